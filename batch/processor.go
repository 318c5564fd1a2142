package batch

import (
	"fmt"
	"os"

	"github.com/animtools/bvh/bvh"
)

// Result records the outcome of one job.
type Result struct {
	Job Job
	Err error
}

// Failed reports whether the job did not complete.
func (r Result) Failed() bool { return r.Err != nil }

// Run converts every job in the config, continuing past failures.
// One Result is returned per job, in order.
func Run(cfg *Config) []Result {
	opts := cfg.WriteOptions()
	results := make([]Result, len(cfg.Jobs))
	for i, job := range cfg.Jobs {
		results[i] = Result{Job: job, Err: runJob(job, opts)}
	}
	return results
}

func runJob(job Job, opts bvh.WriteOptions) error {
	f, err := bvh.LoadFile(job.Input)
	if err != nil {
		return err
	}

	out, err := os.Create(job.Output)
	if err != nil {
		return fmt.Errorf("batch: create %s: %w", job.Output, err)
	}

	werr := bvh.WriteWithOptions(out, f, opts)
	cerr := out.Close()
	if werr != nil {
		return werr
	}
	if cerr != nil {
		return fmt.Errorf("batch: close %s: %w", job.Output, cerr)
	}
	return nil
}

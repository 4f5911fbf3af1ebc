package vidtogif

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// SplitArgs partitions positional arguments into inputs and outputs. The tool
// only ever writes GIFs, so anything ending in .gif is an output.
func SplitArgs(args []string) (inputs, outputs []string) {
	for _, a := range args {
		if strings.EqualFold(filepath.Ext(a), ".gif") {
			outputs = append(outputs, a)
		} else {
			inputs = append(inputs, a)
		}
	}
	return inputs, outputs
}

// Pair matches inputs with outputs positionally. With no outputs every input
// gets an auto-derived name; otherwise the counts must match exactly.
func Pair(inputs, outputs []string, opts Options) ([]Request, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no input files given", ErrInvalidArgument)
	}
	if len(outputs) != 0 && len(outputs) != len(inputs) {
		return nil, fmt.Errorf("%w: got %d inputs but %d outputs, give none or one per input",
			ErrInvalidArgument, len(inputs), len(outputs))
	}

	reqs := make([]Request, 0, len(inputs))
	for i, in := range inputs {
		out := DeriveOutput(in)
		if len(outputs) > 0 {
			out = outputs[i]
		}
		reqs = append(reqs, Request{Input: in, Output: out, Options: opts})
	}
	return reqs, nil
}

// Result is the outcome of one request in a batch.
type Result struct {
	Request Request
	Err     error
}

// Failed reports whether the request ended in the Failed state.
func (r Result) Failed() bool { return r.Err != nil }

// ConvertAll processes requests sequentially, best-effort: a failed request
// is recorded and the remaining requests still run. Results come back in
// request order. onDone, when non-nil, fires after each request settles.
func (c *Converter) ConvertAll(ctx context.Context, reqs []Request, onDone func(Result)) []Result {
	results := make([]Result, 0, len(reqs))
	for _, req := range reqs {
		res := Result{Request: req, Err: c.Convert(ctx, req)}
		if res.Err != nil {
			c.log.Debug("conversion failed", "input", req.Input, "error", res.Err)
		}
		results = append(results, res)
		if onDone != nil {
			onDone(res)
		}
	}
	return results
}

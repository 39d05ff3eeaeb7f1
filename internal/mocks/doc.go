// Package mocks provides shared test doubles for the interfaces that cross
// package boundaries, so that pipeline, service and API tests script the
// generator the same way.
//
// Usage:
//
//	gen := &mocks.MockGenerator{
//	    GenerateTextFn: func(ctx context.Context, prompt string, pc generation.PromptContext) (generation.Content, error) {
//	        return generation.Content{"headline": "Hi"}, nil
//	    },
//	}
//
// Every call is recorded for later assertions.
package mocks

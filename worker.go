package gridpath

import (
	"context"
	"sync"
)

// Query is a single start/goal pair for SearchBatch.
type Query struct {
	Start Coordinate `json:"start"`
	Goal  Coordinate `json:"goal"`
}

// BatchResult pairs a query with its outcome. Err holds per-query failures
// such as ErrInvalidQuery.
type BatchResult struct {
	Query  Query
	Result Result
	Err    error
}

// SearchBatch runs independent searches over the same grid on a pool of
// worker goroutines (see WithWorkers). The grid is only read. Results are
// returned in query order. If ctx is done before every query has been
// dispatched, the remaining results are left zero and ctx.Err() is returned.
func SearchBatch(
	contextObject context.Context,
	grid *Grid,
	queries []Query,
	options ...Option,
) ([]BatchResult, error) {
	searchOptions := buildOptions(options)
	numberOfWorkers := min(searchOptions.NumberOfWorkers, len(queries))
	if numberOfWorkers < 1 {
		numberOfWorkers = 1
	}

	results := make([]BatchResult, len(queries))
	taskChannel := make(chan int)

	// --- Start worker pool ---
	var wg sync.WaitGroup
	for i := 0; i < numberOfWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range taskChannel {
				query := queries[index]
				result, err := Search(contextObject, grid, query.Start, query.Goal, options...)
				results[index] = BatchResult{Query: query, Result: result, Err: err}
			}
		}()
	}

dispatch:
	for index := range queries {
		select {
		case <-contextObject.Done():
			break dispatch
		case taskChannel <- index:
		}
	}
	close(taskChannel)
	wg.Wait()

	if err := contextObject.Err(); err != nil {
		return results, err
	}
	return results, nil
}

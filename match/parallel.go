package match

import (
	"runtime"
	"sync"

	"access-review/model"
)

// ResolveAll resolves every identity against the shared immutable message
// set using a bounded worker pool. Each resolution is independent, so the
// only shared state is the read-only corpus; results preserve input order.
func ResolveAll(resolver *Resolver, identities []model.Identity, messages []NormalizedMessage, workers int) []model.Resolution {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if len(identities) > 0 && workers > len(identities) {
		workers = len(identities)
	}

	results := make([]model.Resolution, len(identities))
	jobs := make(chan int, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = resolver.Resolve(identities[i], messages)
			}
		}()
	}

	for i := range identities {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

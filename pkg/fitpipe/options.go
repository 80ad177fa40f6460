package fitpipe

// BatchOption configures ApplyEach.
type BatchOption func(b *batchConfig)

type batchConfig struct {
	concurrent int
}

// BatchConcurrency sets how many inputs may be processed at the same time.
// The default is 1, which keeps the batch strictly sequential.
func BatchConcurrency(concurrent int) BatchOption {
	return func(b *batchConfig) {
		b.concurrent = concurrent
	}
}

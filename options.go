package condsync

const (
	// DefaultQueueLabel is the label used in trace output when no
	// WithLabel option is given.
	DefaultQueueLabel = "condsync.serial"
)

// QueueOption configures a SerialQueue.
type QueueOption func(*queueConfig)

type queueConfig struct {
	label string
}

// WithLabel sets the label that prefixes the queue's trace events.
func WithLabel(label string) QueueOption {
	return func(c *queueConfig) { c.label = label }
}

func newQueueConfig(opts []QueueOption) queueConfig {
	c := queueConfig{label: DefaultQueueLabel}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

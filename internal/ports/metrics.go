package ports

// Metrics receives domain events worth counting.
type Metrics interface {
	UserRegistered()
	TaskCreated()
	TaskDeleted()
}

package worker

// SetActiveDoneHook installs f to run between observing the active operation complete
// and replacing it.
func SetActiveDoneHook(w *Worker, f func()) {
	w.activeDone = f
}

// ReplaceActive swaps in a new completed active operation.
func ReplaceActive(w *Worker) {
	w.active.Store(completedOperation(true))
}

package launcherkit

// Close releases the in-memory icons. Changes since the last Commit are
// lost. Close is idempotent.
func (k *Kit) Close() error {
	if k == nil || !k.closed.CompareAndSwap(false, true) {
		return nil
	}
	return k.icons.Close()
}

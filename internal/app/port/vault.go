package port

// PhraseVault is the external key-value store holding the active seed phrase
// across UI reloads (the extension's persistent background context). The core
// treats it as authoritative for session persistence and implements no
// persistence of its own.
type PhraseVault interface {
	Store(phrase string)
	// Get returns the stored phrase and whether one is present.
	Get() (string, bool)
	Clear()
}

package keyvault

import (
	"sync"

	"pocket_wallet/internal/app/port"
)

// MemoryVault is an in-process port.PhraseVault. It stands in for the
// persistent extension storage the session survives UI reloads through; the
// phrase never leaves process memory here.
type MemoryVault struct {
	mu     sync.RWMutex
	phrase string
	set    bool
}

func NewMemoryVault() *MemoryVault {
	return &MemoryVault{}
}

var _ port.PhraseVault = (*MemoryVault)(nil)

func (v *MemoryVault) Store(phrase string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.phrase = phrase
	v.set = true
}

func (v *MemoryVault) Get() (string, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.phrase, v.set
}

func (v *MemoryVault) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.phrase = ""
	v.set = false
}

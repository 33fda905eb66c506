package memory_test

import (
	"testing"

	"github.com/dennissergeev/exo-lightning-msci-project/pkg/adapters/memory"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunResultStoreContract(t, store)
}

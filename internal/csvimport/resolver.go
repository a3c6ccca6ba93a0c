package csvimport

import "github.com/Lelo88/collectibles-api-golang/internal/platforms"

// PlatformResolver es la foto de plataformas tomada al inicio de un import.
// No se modifica mientras dura el import.
type PlatformResolver struct {
	ids map[string]int64
}

// NewPlatformResolver copia el índice normalizando las claves.
func NewPlatformResolver(index map[string]int64) *PlatformResolver {
	ids := make(map[string]int64, len(index))
	for name, id := range index {
		ids[platforms.IndexKey(name)] = id
	}
	return &PlatformResolver{ids: ids}
}

// Resolve busca la plataforma por nombre sin distinguir mayúsculas ni espacios extremos.
func (resolver *PlatformResolver) Resolve(name string) (int64, bool) {
	id, ok := resolver.ids[platforms.IndexKey(name)]
	return id, ok
}

// Len devuelve cuántas plataformas conoce.
func (resolver *PlatformResolver) Len() int {
	return len(resolver.ids)
}

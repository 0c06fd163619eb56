// Package cache contiene cachés en memoria de recursos únicos del servidor.
package cache

import (
	"context"
	"sync"
)

// Singleton guarda un valor cargado bajo demanda hasta que se invalida.
// Se usa para recursos únicos (ajustes, datos del negocio) que se leen en cada
// petición y cambian solo con escrituras explícitas.
type Singleton[T any] struct {
	mu     sync.Mutex
	load   func(ctx context.Context) (T, error)
	value  T
	loaded bool
}

// NewSingleton construye la caché con su función de carga.
func NewSingleton[T any](load func(ctx context.Context) (T, error)) *Singleton[T] {
	return &Singleton[T]{load: load}
}

// Get devuelve el valor en caché o lo carga. Un error de carga no se cachea.
func (s *Singleton[T]) Get(ctx context.Context) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.value, nil
	}
	v, err := s.load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	s.value = v
	s.loaded = true
	return v, nil
}

// Invalidate descarta el valor; la próxima lectura vuelve a cargar.
func (s *Singleton[T]) Invalidate() {
	s.mu.Lock()
	var zero T
	s.value = zero
	s.loaded = false
	s.mu.Unlock()
}

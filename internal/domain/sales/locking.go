package sales

import "sort"

// LockOrder devuelve los índices de las líneas ordenados por ID de ítem ascendente (estable).
// Adquirir los bloqueos de fila en este orden evita el interbloqueo entre dos órdenes
// que referencian los mismos ítems en orden inverso.
func LockOrder(itemIDs []int64) []int {
	idx := make([]int, len(itemIDs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return itemIDs[idx[a]] < itemIDs[idx[b]]
	})
	return idx
}

// Package hierarchy implementa la lógica de consistencia de árboles
// jerárquicos compartida por ubicaciones y categorías: prevención de ciclos
// al reparentar, cierre transitivo de descendientes, construcción de rutas y
// agregación de conteos. Opera sobre una arena indexada por id construida a
// partir de los nodos planos cargados desde persistencia.
package hierarchy

import "strings"

// PathSeparator separa los nombres de los ancestros en la ruta de un nodo.
const PathSeparator = "/"

// Node es cualquier entidad con id, padre y nombre (StockLocation, PartCategory).
type Node interface {
	NodeID() string
	NodeParentID() string
	NodeName() string
}

// Tree es la arena en memoria sobre la que se evalúan las reglas del árbol.
// Se construye por operación desde el listado plano de nodos; no mantiene
// estado entre llamadas.
type Tree[N Node] struct {
	nodes    map[string]N
	children map[string][]string
	order    []string // ids en orden de inserción, para recorridos estables
}

// New construye la arena a partir de un listado plano de nodos.
func New[N Node](nodes []N) *Tree[N] {
	t := &Tree[N]{
		nodes:    make(map[string]N, len(nodes)),
		children: make(map[string][]string),
	}
	for _, n := range nodes {
		id := n.NodeID()
		t.nodes[id] = n
		t.order = append(t.order, id)
		if pid := n.NodeParentID(); pid != "" {
			t.children[pid] = append(t.children[pid], id)
		}
	}
	return t
}

// Get devuelve el nodo con el id dado.
func (t *Tree[N]) Get(id string) (N, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Roots devuelve los nodos sin padre, en orden de inserción.
func (t *Tree[N]) Roots() []N {
	var roots []N
	for _, id := range t.order {
		if t.nodes[id].NodeParentID() == "" {
			roots = append(roots, t.nodes[id])
		}
	}
	return roots
}

// Children devuelve los hijos directos de un nodo.
func (t *Tree[N]) Children(id string) []N {
	ids := t.children[id]
	out := make([]N, 0, len(ids))
	for _, cid := range ids {
		out = append(out, t.nodes[cid])
	}
	return out
}

// HasChildren indica si el nodo tiene al menos un hijo directo.
func (t *Tree[N]) HasChildren(id string) bool {
	return len(t.children[id]) > 0
}

// UniqueDescendants devuelve el cierre transitivo de los hijos de un nodo.
// Usa un conjunto de visitados: los ciclos están estructuralmente prohibidos,
// pero el recorrido no debe colgarse ante datos corruptos.
func (t *Tree[N]) UniqueDescendants(id string) map[string]struct{} {
	visited := make(map[string]struct{})
	stack := append([]string(nil), t.children[id]...)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := visited[cur]; ok {
			continue
		}
		visited[cur] = struct{}{}
		stack = append(stack, t.children[cur]...)
	}
	return visited
}

// WouldCycle indica si asignar newParentID como padre de id crearía un ciclo:
// el nuevo padre es el propio nodo o uno de sus descendientes. Reparentar a
// raíz (newParentID vacío) nunca cicla.
func (t *Tree[N]) WouldCycle(id, newParentID string) bool {
	if newParentID == "" {
		return false
	}
	if newParentID == id {
		return true
	}
	_, ok := t.UniqueDescendants(id)[newParentID]
	return ok
}

// PathString devuelve los nombres desde la raíz hasta el nodo unidos por "/".
func (t *Tree[N]) PathString(id string) string {
	var names []string
	visited := make(map[string]struct{})
	for cur := id; cur != ""; {
		if _, ok := visited[cur]; ok {
			break
		}
		visited[cur] = struct{}{}
		n, ok := t.nodes[cur]
		if !ok {
			break
		}
		names = append(names, n.NodeName())
		cur = n.NodeParentID()
	}
	// invertir: se recolectó de hoja a raíz
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, PathSeparator)
}

// ItemCount suma los items directamente poseídos por el nodo y todos sus
// descendientes. direct mapea id de nodo -> cantidad de items directos.
func (t *Tree[N]) ItemCount(id string, direct map[string]int) int {
	total := direct[id]
	for did := range t.UniqueDescendants(id) {
		total += direct[did]
	}
	return total
}

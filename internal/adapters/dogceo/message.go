package dogceo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// MessageKind indica qué forma tenía el campo "message" en el JSON.
type MessageKind int

const (
	KindAbsent MessageKind = iota // ausente o null
	KindScalar                    // "https://..."
	KindList                      // ["a", "b"]
	KindObject                    // {"hound": ["afghan", "basset"]}
)

func (k MessageKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	default:
		return "absent"
	}
}

// Message es el payload del envelope {message, status}. Se decodifica una sola vez
// como variante etiquetada y los callers lo consumen vía Strings().
type Message struct {
	kind   MessageKind
	scalar string
	list   []string
	object map[string][]string
}

func (m Message) Kind() MessageKind { return m.kind }

func (m *Message) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*m = Message{kind: KindAbsent}
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*m = Message{kind: KindScalar, scalar: s}
	case '[':
		var l []string
		if err := json.Unmarshal(b, &l); err != nil {
			return err
		}
		*m = Message{kind: KindList, list: l}
	case '{':
		var o map[string][]string
		if err := json.Unmarshal(b, &o); err != nil {
			return err
		}
		*m = Message{kind: KindObject, object: o}
	default:
		return fmt.Errorf("dogceo: unsupported message type: %s", string(b))
	}
	return nil
}

// Strings normaliza el payload a lista:
// - scalar => lista de un elemento
// - list   => copia tal cual (orden preservado)
// - object => keys ordenadas
// - absent => lista vacía
// Nunca devuelve nil.
func (m Message) Strings() []string {
	switch m.kind {
	case KindScalar:
		return []string{m.scalar}
	case KindList:
		out := make([]string, len(m.list))
		copy(out, m.list)
		return out
	case KindObject:
		out := make([]string, 0, len(m.object))
		for k := range m.object {
			out = append(out, k)
		}
		sort.Strings(out)
		return out
	default:
		return []string{}
	}
}

// Text devuelve el scalar (p.ej. mensaje de error upstream). Vacío si no es scalar.
func (m Message) Text() string {
	if m.kind != KindScalar {
		return ""
	}
	return m.scalar
}

// envelope es el wrapper que dog.ceo usa en todas las respuestas.
type envelope struct {
	Status  string  `json:"status"`
	Message Message `json:"message"`
	Code    int     `json:"code,omitempty"`
}

const (
	statusSuccess = "success"
	statusError   = "error"
)

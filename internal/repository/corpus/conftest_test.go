package corpus

import (
	"context"

	"github.com/kailas-cloud/guide/internal/db"
)

const sampleJSON = `[
  {
    "id": "street-satpayev",
    "type": "street",
    "ru": {
      "name": "Улица Сатпаева",
      "tags": ["улица"],
      "description": "Одна из главных улиц города.",
      "knowledge": "Названа в честь Каныша Сатпаева.\nДлина около 3 км."
    },
    "en": {
      "name": "Satpayev Street",
      "tags": ["street"],
      "description": "One of the main streets of the city.",
      "knowledge": "Named after Kanysh Satpayev."
    },
    "images": [
      {"id": "satpayev-1", "description": "Street view", "imageUrl": "https://example.com/s.jpg", "imageHint": "street"}
    ]
  },
  {
    "id": "figure-satpayev",
    "type": "figure",
    "ru": {"name": "Каныш Сатпаев", "tags": ["геолог"], "description": "Геолог.", "knowledge": "Родился в 1899 году."},
    "en": {"name": "Kanysh Satpayev", "tags": ["geologist"], "description": "Geologist.", "knowledge": "Born in 1899."}
  }
]`

const sampleYAML = `
- id: industrial-aluminium
  type: industrial
  ru:
    name: Алюминиевый завод
    tags: [завод]
    description: Крупнейшее предприятие отрасли.
    knowledge: |-
      Запущен в 2007 году.
      Выпускает первичный алюминий.
  en:
    name: Aluminium Smelter
    tags: [plant]
    description: The largest enterprise of the industry.
    knowledge: Launched in 2007.
`

// memStore is an in-memory kvStore.
type memStore struct {
	data   map[string][]byte
	getErr error
	setErr error
}

func newMemStore() *memStore { return &memStore{data: make(map[string][]byte)} }

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

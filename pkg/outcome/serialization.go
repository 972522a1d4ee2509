package outcome

import (
	"encoding/json"

	"github.com/distributed-mis/pkg/mis"
)

type setJSON struct {
	Records []mis.Outcome `json:"records"`
}

func (s *Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(setJSON{Records: s.All()})
}

func (s *Set) UnmarshalJSON(data []byte) error {
	var sj setJSON
	if err := json.Unmarshal(data, &sj); err != nil {
		return err
	}

	s.mu.Lock()
	s.records = make(map[int]mis.Outcome, len(sj.Records))
	s.mu.Unlock()

	for _, o := range sj.Records {
		s.Add(o)
	}
	return nil
}

package service

import "strings"

// DepartmentService exposes the configured department names. Lookups are case-insensitive
// and return the configured spelling.
type DepartmentService struct {
	names []string
	index map[string]string
}

func NewDepartmentService(names []string) *DepartmentService {
	s := &DepartmentService{index: make(map[string]string, len(names))}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, dup := s.index[key]; dup {
			continue
		}
		s.index[key] = strings.TrimSpace(name)
		s.names = append(s.names, strings.TrimSpace(name))
	}
	return s
}

func (s *DepartmentService) List() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s *DepartmentService) Canonical(name string) (string, bool) {
	canonical, ok := s.index[strings.ToLower(strings.TrimSpace(name))]
	return canonical, ok
}

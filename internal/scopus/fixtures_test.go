// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scopus

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

const entryIRL = `{
  "dc:identifier": "SCOPUS_ID:85100000001",
  "dc:title": "Inverse reinforcement learning for smart grids",
  "prism:publicationName": "IEEE Transactions on Smart Grid",
  "prism:coverDisplayDate": "15 March 2020",
  "citedby-count": "12",
  "affiliation": [
    {"affilname": "University of Toronto", "affiliation-city": "Toronto"},
    {"affilname": "Politecnico di Milano, DEIB"}
  ],
  "author": [
    {"authid": "1", "authname": "Smith J."},
    {"authid": "2", "authname": "Rossi M."}
  ],
  "authkeywords": "inverse RL | smart grid|control "
}`

const entryNoAffiliation = `{
  "dc:title": "Apprenticeship learning via IRL",
  "prism:publicationName": "ICML",
  "prism:coverDisplayDate": "2004-07-04",
  "citedby-count": "3000",
  "author": [{"authname": "Abbeel P."}, {"authname": "Ng A.Y."}]
}`

const entryNoAuthors = `{
  "dc:title": "Editorial",
  "prism:publicationName": "Journal of Control",
  "prism:coverDisplayDate": "2021",
  "citedby-count": "0"
}`

const entryNumericCitedBy = `{
  "dc:title": "Maximum entropy IRL",
  "prism:publicationName": "AAAI",
  "prism:coverDisplayDate": "July 2008",
  "citedby-count": 42,
  "author": [{"authname": "Ziebart B.D."}],
  "affiliation": null,
  "authkeywords": null
}`

// page wraps entries in a search-results envelope.
func page(total int, entries ...string) string {
	return fmt.Sprintf(`{"search-results": {"opensearch:totalResults": "%d", "entry": [%s]}}`,
		total, strings.Join(entries, ","))
}

// noEntries is an envelope without the entry key.
const noEntries = `{"search-results": {"opensearch:totalResults": "0"}}`

// scriptedExecutor returns canned bodies in order and records offsets.
type scriptedExecutor struct {
	mu      sync.Mutex
	bodies  []string
	err     error
	queries []string
	starts  []int
}

func (s *scriptedExecutor) Search(_ context.Context, query string, start int) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, query)
	s.starts = append(s.starts, start)
	if s.err != nil {
		return nil, s.err
	}
	if len(s.bodies) == 0 {
		return ParseResponse([]byte(noEntries))
	}
	body := s.bodies[0]
	if len(s.bodies) > 1 {
		s.bodies = s.bodies[1:]
	}
	return ParseResponse([]byte(body))
}

package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/target/marketplace-console/internal/core"
	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	"github.com/target/marketplace-console/internal/domain/model"
	apperrors "github.com/target/marketplace-console/internal/errors"
	"github.com/target/marketplace-console/internal/marketplace"
	"github.com/target/marketplace-console/internal/search"
)

const searchResultLimit = 20

// SearchField names a search-as-you-type box.
type SearchField string

const (
	SearchContractors SearchField = "contractors"
	SearchUsers       SearchField = "users"
)

var errUnknownSearchField = apperrors.ValidationField("field", "Unknown search field.")

// SearchServiceOptions groups dependencies for SearchService.
type SearchServiceOptions struct {
	Directory core.DirectoryBackend
	// Cache is optional; nil keeps results uncached.
	Cache    core.SearchCache
	Debounce time.Duration
	CacheTTL time.Duration
}

// SearchHits is one search box result.
type SearchHits struct {
	Query       string             `json:"query"`
	Contractors []model.Contractor `json:"contractors,omitempty"`
	Users       []model.User       `json:"users,omitempty"`
	Total       int                `json:"total"`
}

// SearchService answers search-as-you-type. Keystrokes from one session and field are debounced
// so only the last query in a burst reaches the backend.
type SearchService struct {
	directory core.DirectoryBackend
	loader    *search.Loader
	debouncer *search.Debouncer[*SearchHits]
}

// NewSearchService constructs a SearchService.
func NewSearchService(opts SearchServiceOptions) *SearchService {
	if opts.Directory == nil {
		panic("directory backend is required")
	}
	s := &SearchService{
		directory: opts.Directory,
		loader:    search.NewLoader(opts.Cache, opts.CacheTTL),
	}
	s.debouncer = search.NewDebouncer(opts.Debounce, s.run)
	return s
}

// Search debounces query for the session's field and returns the hits for the burst's final query,
// which may be newer than query.
func (s *SearchService) Search(
	ctx context.Context,
	sess *domainauth.Session,
	field SearchField,
	query string,
) (*SearchHits, error) {
	if field != SearchContractors && field != SearchUsers {
		return nil, errUnknownSearchField
	}
	query = strings.TrimSpace(query)
	sessionID, role := "", domainauth.RoleGuest
	if sess != nil {
		sessionID, role = sess.ID, sess.Role
	}

	// The role travels with the query so shared calls and cached hits never cross roles.
	packed := string(role) + "\x00" + string(field) + "\x00" + query
	res, err := s.debouncer.Wait(withSession(ctx, sess), sessionID+"/"+string(field), packed)
	if err != nil {
		return nil, marketplace.ToAppError(err)
	}
	return res.Value, nil
}

// Close runs any pending searches and stops accepting new ones.
func (s *SearchService) Close() {
	s.debouncer.Flush()
	s.debouncer.Stop()
}

func (s *SearchService) run(ctx context.Context, packed string) (*SearchHits, error) {
	roleName, rest, _ := strings.Cut(packed, "\x00")
	fieldName, query, _ := strings.Cut(rest, "\x00")
	field := SearchField(fieldName)
	opts := model.ListOptions{Search: query, Limit: searchResultLimit}

	return search.Load(ctx, s.loader, cacheKey(domainauth.Role(roleName), field, query), func(ctx context.Context) (*SearchHits, error) {
		hits := &SearchHits{Query: query}
		switch field {
		case SearchContractors:
			page, err := s.directory.ListContractors(ctx, opts)
			if err != nil {
				return nil, err
			}
			hits.Contractors, hits.Total = page.Items, page.Total
		case SearchUsers:
			page, err := s.directory.ListUsers(ctx, model.UserListOptions{ListOptions: opts})
			if err != nil {
				return nil, err
			}
			hits.Users, hits.Total = page.Items, page.Total
		}
		return hits, nil
	})
}

func cacheKey(role domainauth.Role, field SearchField, query string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(query)))
	return string(role) + ":" + string(field) + ":" + hex.EncodeToString(sum[:8])
}

// Copyright (c) 2026 BoiBritto. All rights reserved.

package account

import (
	"context"
	"log/slog"
	"strings"

	"github.com/boibritto/boibritto-api/internal/core/genre"
	"github.com/boibritto/boibritto-api/internal/library/collection"
	"github.com/boibritto/boibritto-api/internal/library/reading"
	"github.com/boibritto/boibritto-api/internal/platform/apperr"
	"github.com/boibritto/boibritto-api/internal/platform/constants"
	"github.com/boibritto/boibritto-api/internal/platform/sec"
	"github.com/boibritto/boibritto-api/internal/platform/validate"
	"github.com/boibritto/boibritto-api/internal/social/blog"
	"github.com/boibritto/boibritto-api/pkg/uuidv7"
)

// # Overview Sources

// The overview endpoint pulls a user's most recent items from the library
// and social domains through these narrow contracts, satisfied by the
// respective services.

// CollectionLister supplies recent collections for the profile overview.
type CollectionLister interface {
	RecentByOwner(context context.Context, ownerID string, limit int) ([]*collection.Collection, error)
}

// ReadingLister supplies recent reading entries for the profile overview.
type ReadingLister interface {
	RecentByOwner(context context.Context, ownerID string, limit int) ([]*reading.Entry, error)
}

// BlogLister supplies recent blogs for the profile overview.
type BlogLister interface {
	RecentByOwner(context context.Context, ownerID string, limit int) ([]*blog.Blog, error)
}

// recentItemLimit caps each section of the profile overview.
const recentItemLimit = 5

// # Service Layer

// Service orchestrates account bootstrapping and profile management.
type Service struct {
	accounts AccountRepository
	identity IdentityCache
	logger   *slog.Logger

	// Overview sources, wired from the library and social domains.
	collections CollectionLister
	reading     ReadingLister
	blogs       BlogLister
}

// NewService constructs a new account [Service].
func NewService(accounts AccountRepository, identity IdentityCache, logger *slog.Logger) *Service {
	return &Service{
		accounts: accounts,
		identity: identity,
		logger:   logger,
	}
}

// WithOverviewSources attaches the cross-domain listers used by
// [Service.Overview]. Sources may be nil, in which case the corresponding
// overview section is empty.
func (service *Service) WithOverviewSources(collections CollectionLister, reading ReadingLister, blogs BlogLister) *Service {
	service.collections = collections
	service.reading = reading
	service.blogs = blogs
	return service
}

// # Identity Resolution

/*
ResolveUID maps a verified external identity subject to the local account
UUID, consulting the Redis cache first.

Description: Implements [middleware.AccountResolver]. A cache miss falls
through to PostgreSQL and re-primes the cache. Cache write failures are
logged but never fail the request.

Parameters:
  - context: context.Context
  - uid: string (External identity subject)

Returns:
  - string: Account UUID
  - error: apperr.NotFound if the subject has no account yet
*/
func (service *Service) ResolveUID(context context.Context, uid string) (string, error) {

	// Fast path: cache hit
	if accountID, err := service.identity.Get(context, uid); err == nil {
		return accountID, nil
	}

	// Slow path: primary store
	user, err := service.accounts.FindByUID(context, uid)
	if err != nil {
		return "", err
	}

	if err := service.identity.Set(context, uid, user.ID, constants.IdentityCacheTTL); err != nil {
		service.logger.Warn("identity_cache_set_failed",
			slog.String("uid", uid),
			slog.Any("error", err),
		)
	}

	return user.ID, nil
}

// # Account Bootstrapping

// SyncInput is the optional profile seed accepted on first sign-in.
type SyncInput struct {
	Username    string   `json:"username"`
	DisplayName string   `json:"display_name"`
	Genres      []string `json:"genres"`
}

/*
Sync upserts an account from verified token claims.

Description: Called once per sign-in by the client. If the subject already
has an account the existing row is returned untouched (identity fields are
immutable). Otherwise a new account is created, deriving a username from
the email local part when the client supplied none.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (Verified token payload)
  - input: SyncInput (Optional profile seed)

Returns:
  - *User: The existing or newly created account
  - bool: true when a new account was created
  - error: Validation or persistence errors
*/
func (service *Service) Sync(context context.Context, claims *sec.AuthClaims, input SyncInput) (*User, bool, error) {
	uid := claims.SubjectUID()

	// Returning member: nothing to write.
	existing, err := service.accounts.FindByUID(context, uid)
	if err == nil {
		return existing, false, nil
	}
	if apperr.As(err) == nil || apperr.As(err).HTTPStatus != 404 {
		return nil, false, err
	}

	// First sign-in: build the account row.
	username := strings.TrimSpace(input.Username)
	if username == "" {
		username = deriveUsername(claims.Email, uid)
	}

	validator := &validate.Validator{}
	validator.Username(FieldUsername, username)
	validator.MaxLen(FieldDisplayName, input.DisplayName, MaxDisplayNameLen)
	validator.Custom(FieldGenres, len(input.Genres) > MaxGenres, "Too many genres")
	if bad := genre.Invalid(input.Genres); bad != "" {
		validator.Custom(FieldGenres, true, "Unknown genre: "+bad)
	}
	if claims.Email != "" {
		validator.Email(FieldEmail, claims.Email)
	}
	if err := validator.Err(); err != nil {
		return nil, false, err
	}

	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		displayName = claims.Name
	}
	if displayName == "" {
		displayName = username
	}

	user := &User{
		ID:          uuidv7.New(),
		UID:         uid,
		Username:    username,
		Email:       claims.Email,
		DisplayName: displayName,
		Genres:      normalizeGenres(input.Genres),
	}

	if err := service.accounts.Create(context, user); err != nil {
		return nil, false, err
	}

	if err := service.identity.Set(context, uid, user.ID, constants.IdentityCacheTTL); err != nil {
		service.logger.Warn("identity_cache_set_failed", slog.String("uid", uid), slog.Any("error", err))
	}

	service.logger.Info("account_created",
		slog.String("account_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, true, nil
}

// # Profile Operations

/*
Me returns the requester's own account.
*/
func (service *Service) Me(context context.Context, accountID string) (*User, error) {
	return service.accounts.FindByID(context, accountID)
}

// UpdateProfileInput carries the mutable profile fields of a PATCH request.
// Nil pointers mean "leave unchanged".
type UpdateProfileInput struct {
	Username    *string   `json:"username"`
	DisplayName *string   `json:"display_name"`
	Bio         *string   `json:"bio"`
	AvatarURL   *string   `json:"avatar_url"`
	Genres      *[]string `json:"genres"`
}

/*
UpdateProfile applies a partial update to the requester's own profile.

Description: Identity fields (uid, email) are not updatable. The identity
cache entry is invalidated after a successful write so subsequent requests
observe the fresh row.

Parameters:
  - context: context.Context
  - accountID: string (Requester)
  - input: UpdateProfileInput

Returns:
  - *User: The updated account
  - error: Validation, Conflict (username taken), or persistence errors
*/
func (service *Service) UpdateProfile(context context.Context, accountID string, input UpdateProfileInput) (*User, error) {
	user, err := service.accounts.FindByID(context, accountID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		user.Username = strings.TrimSpace(*input.Username)
	}
	if input.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}
	if input.Genres != nil {
		user.Genres = normalizeGenres(*input.Genres)
	}

	validator := &validate.Validator{}
	validator.Username(FieldUsername, user.Username)
	validator.Required(FieldDisplayName, user.DisplayName)
	validator.MaxLen(FieldDisplayName, user.DisplayName, MaxDisplayNameLen)
	validator.MaxLen(FieldBio, user.Bio, MaxBioLen)
	validator.Custom(FieldGenres, len(user.Genres) > MaxGenres, "Too many genres")
	if bad := genre.Invalid(user.Genres); bad != "" {
		validator.Custom(FieldGenres, true, "Unknown genre: "+bad)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.accounts.UpdateProfile(context, user); err != nil {
		return nil, err
	}

	if err := service.identity.Invalidate(context, user.UID); err != nil {
		service.logger.Warn("identity_cache_invalidate_failed", slog.String("uid", user.UID), slog.Any("error", err))
	}

	return user, nil
}

/*
PublicByUsername returns another member's public profile.
*/
func (service *Service) PublicByUsername(context context.Context, username string) (*PublicProfile, error) {
	user, err := service.accounts.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

/*
Overview aggregates the requester's account with their recent collections,
reading entries, and blogs.
*/
func (service *Service) Overview(context context.Context, accountID string) (*Overview, error) {
	user, err := service.accounts.FindByID(context, accountID)
	if err != nil {
		return nil, err
	}

	overview := &Overview{User: user}

	if service.collections != nil {
		if overview.Collections, err = service.collections.RecentByOwner(context, accountID, recentItemLimit); err != nil {
			return nil, err
		}
	}
	if service.reading != nil {
		if overview.ReadingEntries, err = service.reading.RecentByOwner(context, accountID, recentItemLimit); err != nil {
			return nil, err
		}
	}
	if service.blogs != nil {
		if overview.Blogs, err = service.blogs.RecentByOwner(context, accountID, recentItemLimit); err != nil {
			return nil, err
		}
	}

	return overview, nil
}

// # Internal Helpers

// deriveUsername builds a handle from the email local part, falling back to
// a uid-based handle when the email is unusable.
func deriveUsername(email, uid string) string {
	local := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		local = email[:at]
	}

	var b strings.Builder
	for _, r := range strings.ToLower(local) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}

	handle := b.String()
	if len(handle) < 3 {
		suffix := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(uid))
		if len(suffix) > 8 {
			suffix = suffix[:8]
		}
		handle = "reader_" + suffix
	}
	if len(handle) > 30 {
		handle = handle[:30]
	}

	return handle
}

// normalizeGenres trims and deduplicates a genre list, preserving order.
func normalizeGenres(genres []string) []string {
	seen := make(map[string]struct{}, len(genres))
	result := make([]string, 0, len(genres))
	for _, g := range genres {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		result = append(result, g)
	}
	return result
}

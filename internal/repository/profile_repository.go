package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/courtside/racketdb/internal/model"
)

// ProfileRepo encapsulates all database queries related to user profiles.
type ProfileRepo struct {
	db *sql.DB
}

// NewProfileRepo constructs a ProfileRepo with the provided DB handle.
func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

const profileCols = "user_id, username, display_name, bio, play_level, favorite_brand_id, avatar_url, created_at, updated_at"

// Get fetches one profile by user id. Returns ErrNotFound when no row
// exists (deleted account).
func (r *ProfileRepo) Get(ctx context.Context, userID uint64) (*model.UserProfile, error) {
	var p model.UserProfile
	err := r.db.QueryRowContext(ctx,
		"SELECT "+profileCols+" FROM user_profiles WHERE user_id=? LIMIT 1", userID).
		Scan(&p.UserID, &p.Username, &p.DisplayName, &p.Bio, &p.PlayLevel,
			&p.FavoriteBrandID, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetBatch fetches the profiles of a set of users in one IN query, keyed by
// user id. Missing users are simply absent from the map; callers render
// those authors anonymously.
func (r *ProfileRepo) GetBatch(ctx context.Context, userIDs []uint64) (map[uint64]model.AuthorProfile, error) {
	out := make(map[uint64]model.AuthorProfile, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	args := make([]any, len(userIDs))
	for i, id := range userIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT user_id, username, display_name, avatar_url FROM user_profiles WHERE user_id IN ("+placeholders(len(args))+")",
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id       uint64
			username sql.NullString
			display  sql.NullString
			avatar   sql.NullString
		)
		if err := rows.Scan(&id, &username, &display, &avatar); err != nil {
			return nil, err
		}
		ap := model.AuthorProfile{UserID: id, Username: username.String, DisplayName: display.String}
		if avatar.Valid {
			ap.AvatarURL = &avatar.String
		}
		out[id] = ap
	}
	return out, rows.Err()
}

// ProfilePatch carries the optional profile fields of a partial update.
// A nil field leaves the column untouched; a pointer to the empty string
// clears it to NULL.
type ProfilePatch struct {
	Username        *string
	DisplayName     *string
	Bio             *string
	PlayLevel       *string
	FavoriteBrandID *uint64
	AvatarURL       *string
}

// Update applies a partial update to the caller's own profile. The row is
// keyed by user_id, so no ownership classification is needed.
func (r *ProfileRepo) Update(ctx context.Context, userID uint64, p ProfilePatch) (*model.UserProfile, error) {
	set := []string{"updated_at=CURRENT_TIMESTAMP"}
	args := []any{}
	add := func(col string, v any) {
		set = append(set, col+"=?")
		args = append(args, v)
	}
	if p.Username != nil {
		add("username", nullable(*p.Username))
	}
	if p.DisplayName != nil {
		add("display_name", nullable(*p.DisplayName))
	}
	if p.Bio != nil {
		add("bio", nullable(*p.Bio))
	}
	if p.PlayLevel != nil {
		add("play_level", nullable(*p.PlayLevel))
	}
	if p.FavoriteBrandID != nil {
		if *p.FavoriteBrandID == 0 {
			add("favorite_brand_id", nil)
		} else {
			add("favorite_brand_id", *p.FavoriteBrandID)
		}
	}
	if p.AvatarURL != nil {
		add("avatar_url", nullable(*p.AvatarURL))
	}
	args = append(args, userID)

	res, err := r.db.ExecContext(ctx,
		"UPDATE user_profiles SET "+strings.Join(set, ", ")+" WHERE user_id=?", args...)
	if err != nil {
		// 1062 = duplicate entry against the unique username index
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// profile rows are created with the user, so a miss means the
		// account is gone
		if _, probeErr := r.Get(ctx, userID); probeErr != nil {
			return nil, probeErr
		}
	}
	return r.Get(ctx, userID)
}

// nullable maps the empty string to SQL NULL.
func nullable(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.TrimSpace(s)
}

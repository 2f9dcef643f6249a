package communitysite

import "time"

const userColumns = `u.id, u.name, u.email, u.password_hash, u.role, u.bio, u.avatar,
	u.is_active, u.created_at, u.updated_at`

func scanUser(row rowScanner) (User, error) {
	var u User
	var isActive int
	var createdAt, updatedAt string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.passwordHash, &u.Role, &u.Bio, &u.Avatar,
		&isActive, &createdAt, &updatedAt)
	if err != nil {
		return User{}, err
	}
	u.IsActive = isActive == 1
	u.CreatedAt = parseTime(createdAt)
	u.UpdatedAt = parseTime(updatedAt)
	return u, nil
}

// CreateUser inserts a user with the given bcrypt password hash.
func (s *Store) CreateUser(u *User, passwordHash string) error {
	now := time.Now().UTC().Truncate(time.Second)
	u.CreatedAt = now
	u.UpdatedAt = now
	res, err := s.db.Exec(`INSERT INTO users (name, email, password_hash, role, bio, avatar, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Name, u.Email, passwordHash, string(u.Role), u.Bio, u.Avatar,
		boolToInt(u.IsActive), fmtTime(now), fmtTime(now))
	if err != nil {
		return err
	}
	u.ID, err = res.LastInsertId()
	return err
}

// GetUserByEmail returns a user by email address.
func (s *Store) GetUserByEmail(email string) (User, error) {
	row := s.db.QueryRow(`SELECT `+userColumns+` FROM users u WHERE u.email = ?`, email)
	return scanUser(row)
}

// GetUserByID returns a user by id.
func (s *Store) GetUserByID(id int64) (User, error) {
	row := s.db.QueryRow(`SELECT `+userColumns+` FROM users u WHERE u.id = ?`, id)
	return scanUser(row)
}

// PasswordHash exposes the stored hash for login verification.
func (u User) PasswordHash() string { return u.passwordHash }

// HasUsers reports whether any account exists; used for first-run bootstrap.
func (s *Store) HasUsers() (bool, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountUsers returns total, admin and active user counts.
func (s *Store) CountUsers() (total, admins, active int, err error) {
	err = s.db.QueryRow(`SELECT COUNT(*),
		COALESCE(SUM(CASE WHEN role = 'admin' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(is_active), 0) FROM users`).Scan(&total, &admins, &active)
	return total, admins, active, err
}

// DashboardStats aggregates the counts shown on the admin dashboard.
type DashboardStats struct {
	PostsTotal     int `json:"posts_total"`
	PostsPublished int `json:"posts_published"`
	PostsDraft     int `json:"posts_draft"`

	CategoriesTotal  int `json:"categories_total"`
	CategoriesActive int `json:"categories_active"`

	PagesTotal  int `json:"pages_total"`
	PagesActive int `json:"pages_active"`

	GalleriesTotal  int `json:"galleries_total"`
	GalleriesActive int `json:"galleries_active"`

	UsersTotal  int `json:"users_total"`
	UsersAdmins int `json:"users_admins"`
	UsersActive int `json:"users_active"`
}

// Stats collects the dashboard counters in one pass per entity.
func (s *Store) Stats() (DashboardStats, error) {
	var st DashboardStats
	var err error
	if st.PostsTotal, err = s.CountPosts(""); err != nil {
		return st, err
	}
	if st.PostsPublished, err = s.CountPosts(StatusPublished); err != nil {
		return st, err
	}
	if st.PostsDraft, err = s.CountPosts(StatusDraft); err != nil {
		return st, err
	}
	if st.CategoriesTotal, st.CategoriesActive, err = s.CountCategories(); err != nil {
		return st, err
	}
	if st.PagesTotal, st.PagesActive, err = s.CountPages(); err != nil {
		return st, err
	}
	if st.GalleriesTotal, st.GalleriesActive, err = s.CountGalleries(); err != nil {
		return st, err
	}
	if st.UsersTotal, st.UsersAdmins, st.UsersActive, err = s.CountUsers(); err != nil {
		return st, err
	}
	return st, nil
}

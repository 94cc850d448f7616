package domain

// User users row. PasswordHash is a bcrypt hash; $2y$ hashes written by the
// legacy PHP panel verify unchanged.
type User struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password"`
	Role         string `db:"role"`
}

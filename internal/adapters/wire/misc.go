package wire

// Dashboard is the body of GET /api/dashboard/stats.
// TotalVisitors mirrors TotalFriends for clients that predate the rename.
type Dashboard struct {
	TotalMembers    int    `json:"total_members"`
	TotalFriends    int    `json:"total_friends"`
	TotalVisitors   int    `json:"total_visitors"`
	TodayAttendance int    `json:"today_attendance"`
	MonthAttendance int    `json:"month_attendance"`
	Today           string `json:"today"`
}

// Credentials is the body of POST /api/auth/login and /api/auth/register.
type Credentials struct {
	Username string `json:"username" validate:"required,notblank,max=64"`
	Password string `json:"password" validate:"required"`
}

// Token is returned by a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Error is the body of every non-2xx response.
type Error struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

package domain

type CtxKey string

const (
	KeyPrincipal CtxKey = "Principal"
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyUserRole  CtxKey = "Role"
)

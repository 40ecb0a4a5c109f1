package entity

// Role rol del usuario respecto a su empresa.
type Role string

// Roles válidos: el primer usuario que vincula una empresa OX es admin, los siguientes manager.
const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

// Valid indica si el rol es uno de los conocidos.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleManager
}

// User es la sesión derivada del payload del token. No se persiste más allá del token crudo.
type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	CompanyID *int   `json:"companyId,omitempty"`
}

// HasCompany indica si el usuario tiene una empresa vinculada.
func (u *User) HasCompany() bool {
	return u != nil && u.CompanyID != nil
}

// IsAdmin indica si el usuario es admin de su empresa.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserPatch actualización parcial (merge superficial) de la sesión.
// UnsetCompany borra CompanyID; tiene prioridad sobre CompanyID.
type UserPatch struct {
	Email        *string
	Role         *Role
	CompanyID    *int
	UnsetCompany bool
}

// Apply devuelve una copia de u con los campos del patch aplicados.
func (p UserPatch) Apply(u User) User {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.CompanyID != nil {
		id := *p.CompanyID
		u.CompanyID = &id
	}
	if p.UnsetCompany {
		u.CompanyID = nil
	}
	return u
}

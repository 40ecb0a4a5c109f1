// Package mockapi implementa en memoria la API REST del backend (login por OTP, empresas y
// catálogo) para desarrollo local y pruebas de punta a punta del dashboard.
package mockapi

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ox-dashboard/internal/application/dto"
	"github.com/jhoicas/ox-dashboard/internal/domain/entity"
	"github.com/jhoicas/ox-dashboard/pkg/jwt"
	"github.com/jhoicas/ox-dashboard/pkg/logger"
)

// Config opciones del servidor simulado.
type Config struct {
	Secret     string        // firma HS256 de los tokens emitidos
	TokenTTL   time.Duration // 0 = 60 minutos
	OTPTTL     time.Duration // 0 = 5 minutos
	BcryptCost int           // 0 = bcrypt.DefaultCost
	Products   []entity.Product
	Logger     *logger.Logger
}

type user struct {
	id        int
	email     string
	role      entity.Role
	companyID *int
}

type company struct {
	id        int
	subdomain string
	oxToken   string
}

type otpEntry struct {
	hash    []byte
	expires time.Time
}

// Server estado en memoria del backend simulado.
type Server struct {
	cfg Config
	log *logger.Logger
	now func() time.Time

	mu            sync.Mutex
	users         map[string]*user // por email
	companies     map[int]*company
	otps          map[string]otpEntry
	nextUserID    int
	nextCompanyID int
}

// New construye el servidor. Sin Products usa el catálogo de ejemplo.
func New(cfg Config) *Server {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 60 * time.Minute
	}
	if cfg.OTPTTL <= 0 {
		cfg.OTPTTL = 5 * time.Minute
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.Products == nil {
		cfg.Products = SampleCatalog(23)
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		cfg:           cfg,
		log:           log,
		now:           time.Now,
		users:         make(map[string]*user),
		companies:     make(map[int]*company),
		otps:          make(map[string]otpEntry),
		nextUserID:    1,
		nextCompanyID: 1,
	}
}

// App construye la aplicación Fiber con las rutas del backend.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{AppName: "ox-mockapi"})
	app.Use(recover.New())
	s.Register(app)
	return app
}

// Register monta las rutas en app.
func (s *Server) Register(app fiber.Router) {
	app.Post("/auth/login", s.beginLogin)
	app.Post("/auth/verify", s.verifyLogin)
	app.Post("/register-company", s.requireBearer, s.registerCompany)
	app.Delete("/company/:id", s.requireBearer, s.deleteCompany)
	app.Get("/products", s.requireBearer, s.listProducts)
}

func fail(c *fiber.Ctx, status int, message any) error {
	return c.Status(status).JSON(fiber.Map{"message": message, "statusCode": status})
}

// ── Auth ─────────────────────────────────────────────────────────────────────

func (s *Server) beginLogin(c *fiber.Ctx) error {
	var in struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid body")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return fail(c, fiber.StatusBadRequest, []string{"email must be an email"})
	}

	otp, err := newOTP()
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not generate OTP")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(otp), s.cfg.BcryptCost)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not generate OTP")
	}

	s.mu.Lock()
	s.otps[email] = otpEntry{hash: hash, expires: s.now().Add(s.cfg.OTPTTL)}
	s.mu.Unlock()

	s.log.Debug().Str("email", email).Msg("mockapi: OTP emitido")
	// el backend de demostración devuelve el código en la respuesta
	return c.JSON(dto.BeginLoginResponse{OTP: otp})
}

func (s *Server) verifyLogin(c *fiber.Ctx) error {
	var in struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid body")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.otps[email]
	if !ok || s.now().After(entry.expires) {
		return fail(c, fiber.StatusUnauthorized, "OTP expired or not requested")
	}
	if bcrypt.CompareHashAndPassword(entry.hash, []byte(strings.TrimSpace(in.OTP))) != nil {
		return fail(c, fiber.StatusUnauthorized, "Invalid OTP")
	}
	delete(s.otps, email)

	u, ok := s.users[email]
	if !ok {
		u = &user{id: s.nextUserID, email: email, role: entity.RoleManager}
		s.nextUserID++
		s.users[email] = u
	}

	token, err := s.issueToken(u)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not issue token")
	}
	return c.JSON(dto.VerifyLoginResponse{Token: token})
}

func (s *Server) issueToken(u *user) (string, error) {
	return jwt.Generate(s.cfg.Secret, jwt.Claims{
		Sub:       u.id,
		Email:     u.email,
		Role:      string(u.role),
		CompanyID: copyInt(u.companyID),
	}, s.cfg.TokenTTL)
}

// IssueToken emite un token para email creando el usuario si no existe (tests).
func (s *Server) IssueToken(email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		u = &user{id: s.nextUserID, email: email, role: entity.RoleManager}
		s.nextUserID++
		s.users[email] = u
	}
	return s.issueToken(u)
}

// ── Middleware ───────────────────────────────────────────────────────────────

const localUser = "mock_user"

// requireBearer valida la firma del token y carga el usuario actual (el estado vigente del
// servidor, no el del token: el rol o la empresa pudieron cambiar desde que se emitió).
func (s *Server) requireBearer(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	claims, err := jwt.Verify(s.cfg.Secret, strings.TrimSpace(parts[1]))
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	s.mu.Lock()
	u := s.users[strings.ToLower(claims.Email)]
	s.mu.Unlock()
	if u == nil || u.id != claims.Sub {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	c.Locals(localUser, u)
	return c.Next()
}

func currentUser(c *fiber.Ctx) *user {
	u, _ := c.Locals(localUser).(*user)
	return u
}

// ── Empresas ─────────────────────────────────────────────────────────────────

func (s *Server) registerCompany(c *fiber.Ctx) error {
	var in struct {
		Subdomain string `json:"subdomain"`
		Token     string `json:"token"`
	}
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid body")
	}
	subdomain := strings.ToLower(strings.TrimSpace(in.Subdomain))
	var problems []string
	if subdomain == "" {
		problems = append(problems, "subdomain should not be empty")
	}
	if strings.TrimSpace(in.Token) == "" {
		problems = append(problems, "token should not be empty")
	}
	if len(problems) > 0 {
		return fail(c, fiber.StatusBadRequest, problems)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := currentUser(c)
	if u.companyID != nil {
		return fail(c, fiber.StatusConflict, "User already belongs to a company")
	}

	var target *company
	for _, co := range s.companies {
		if co.subdomain == subdomain {
			target = co
			break
		}
	}
	role := entity.RoleManager
	if target == nil {
		target = &company{id: s.nextCompanyID, subdomain: subdomain, oxToken: in.Token}
		s.nextCompanyID++
		s.companies[target.id] = target
		role = entity.RoleAdmin
	} else if target.oxToken != in.Token {
		return fail(c, fiber.StatusBadRequest, "Invalid OX token for this subdomain")
	}

	id := target.id
	u.companyID = &id
	u.role = role
	s.log.Info().Int("company_id", id).Str("role", string(role)).Msg("mockapi: empresa vinculada")

	return c.Status(fiber.StatusCreated).JSON(dto.RegisterCompanyResponse{
		Message:   "Company registered successfully",
		Role:      role,
		CompanyID: id,
	})
}

func (s *Server) deleteCompany(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid company id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.companies[id]; !ok {
		return fail(c, fiber.StatusNotFound, "Company not found")
	}
	u := currentUser(c)
	if u.companyID == nil || *u.companyID != id || u.role != entity.RoleAdmin {
		return fail(c, fiber.StatusForbidden, "Only the company admin can delete it")
	}

	delete(s.companies, id)
	for _, other := range s.users {
		if other.companyID != nil && *other.companyID == id {
			other.companyID = nil
			other.role = entity.RoleManager
		}
	}
	return c.JSON(dto.MessageResponse{Message: "Company deleted successfully"})
}

// ── Productos ────────────────────────────────────────────────────────────────

func (s *Server) listProducts(c *fiber.Ctx) error {
	s.mu.Lock()
	u := currentUser(c)
	linked := u.companyID != nil
	s.mu.Unlock()
	if !linked {
		return fail(c, fiber.StatusForbidden, "No company attached")
	}

	page := c.QueryInt("page", 1)
	size := c.QueryInt("size", 10)
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}

	all := s.cfg.Products
	// page puede venir enorme: se compara antes de multiplicar para no desbordar.
	start := len(all)
	if page-1 <= len(all)/size {
		start = (page - 1) * size
	}
	if start > len(all) {
		start = len(all)
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return c.JSON(fiber.Map{
		"data":  all[start:end],
		"page":  page,
		"size":  size,
		"total": len(all),
	})
}

// ── helpers ──────────────────────────────────────────────────────────────────

// newOTP código numérico de 6 dígitos.
func newOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("mockapi: generar OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/gestion-compras/internal/application/dto"
	"github.com/tu-usuario/gestion-compras/internal/domain"
	"github.com/tu-usuario/gestion-compras/internal/domain/entity"
)

type fakeUserRepo struct {
	usuarios map[string]*entity.User // por email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{usuarios: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	if _, ok := r.usuarios[u.Email]; ok {
		return domain.ErrDuplicate
	}
	copia := *u
	r.usuarios[u.Email] = &copia
	return nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	if u, ok := r.usuarios[email]; ok {
		copia := *u
		return &copia, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.usuarios {
		if u.ID == id {
			copia := *u
			return &copia, nil
		}
	}
	return nil, nil
}

func testJWTConfig() JWTConfig {
	return JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "gestion-compras-test"}
}

func TestRegisterUser_HasheaPasswordYAplicaDefaults(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUseCase(repo, testJWTConfig())

	user, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "ana@empresa.cl",
		Password: "clave-segura-123",
	})

	require.NoError(t, err)
	assert.Equal(t, "ana@empresa.cl", user.Email)
	assert.Equal(t, entity.RoleOperador, user.Role, "rol por defecto operador")
	assert.Equal(t, "ana@empresa.cl", user.Name, "nombre por defecto el email")
	assert.Equal(t, "active", user.Status)

	guardado := repo.usuarios["ana@empresa.cl"]
	require.NotNil(t, guardado)
	assert.NotEqual(t, "clave-segura-123", guardado.PasswordHash, "el password nunca se guarda plano")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(guardado.PasswordHash), []byte("clave-segura-123")))
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), testJWTConfig())

	in := dto.RegisterRequest{Email: "ana@empresa.cl", Password: "clave-segura-123"}
	_, err := uc.RegisterUser(in)
	require.NoError(t, err)

	_, err = uc.RegisterUser(in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_PayloadInvalido(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), testJWTConfig())

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "no-es-email", Password: "corta"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_CredencialesCorrectas(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), testJWTConfig())
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@empresa.cl", Password: "clave-segura-123"})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@empresa.cl", Password: "clave-segura-123"})

	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "ana@empresa.cl", out.User.Email)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), testJWTConfig())
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@empresa.cl", Password: "clave-segura-123"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@empresa.cl", Password: "otra-clave"})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), testJWTConfig())

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@empresa.cl", Password: "lo-que-sea"})

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_CuentaInactiva(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUseCase(repo, testJWTConfig())
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@empresa.cl", Password: "clave-segura-123"})
	require.NoError(t, err)
	repo.usuarios["ana@empresa.cl"].Status = "inactive"

	_, err = uc.Login(dto.LoginRequest{Email: "ana@empresa.cl", Password: "clave-segura-123"})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

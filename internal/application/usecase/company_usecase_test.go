package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spekmx/cotizador-api/internal/application/dto"
	"github.com/spekmx/cotizador-api/internal/domain"
	"github.com/spekmx/cotizador-api/internal/domain/entity"
	"github.com/spekmx/cotizador-api/internal/domain/repository"
)

const profileUserID = "00000000-0000-0000-0000-0000000000aa"

type fakeProfileStore struct {
	profiles   map[string]*entity.CompanyProfile
	nextID     int
	failCreate bool
	failUpdate bool
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: map[string]*entity.CompanyProfile{}}
}

func (s *fakeProfileStore) clone() *fakeProfileStore {
	cp := &fakeProfileStore{
		profiles:   make(map[string]*entity.CompanyProfile, len(s.profiles)),
		nextID:     s.nextID,
		failCreate: s.failCreate,
		failUpdate: s.failUpdate,
	}
	for id, p := range s.profiles {
		c := *p
		cp.profiles[id] = &c
	}
	return cp
}

func (s *fakeProfileStore) Create(profile *entity.CompanyProfile) error {
	if s.failCreate {
		return errors.New("insert falló")
	}
	s.nextID++
	profile.ID = fmt.Sprintf("profile-%d", s.nextID)
	c := *profile
	s.profiles[profile.ID] = &c
	return nil
}

func (s *fakeProfileStore) GetByID(id string) (*entity.CompanyProfile, error) {
	p, ok := s.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (s *fakeProfileStore) GetDefaultByUser(userID string) (*entity.CompanyProfile, error) {
	for _, p := range s.profiles {
		if p.UserID == userID && p.IsDefault {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (s *fakeProfileStore) ListByUser(userID string) ([]*entity.CompanyProfile, error) {
	var out []*entity.CompanyProfile
	for _, p := range s.profiles {
		if p.UserID == userID {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

func (s *fakeProfileStore) Update(profile *entity.CompanyProfile) error {
	if s.failUpdate {
		return errors.New("update falló")
	}
	if _, ok := s.profiles[profile.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *profile
	s.profiles[profile.ID] = &c
	return nil
}

func (s *fakeProfileStore) ClearDefault(userID string) error {
	for _, p := range s.profiles {
		if p.UserID == userID {
			p.IsDefault = false
		}
	}
	return nil
}

func (s *fakeProfileStore) Delete(id string) error {
	delete(s.profiles, id)
	return nil
}

// fakeProfileTx imita la semántica transaccional: fn trabaja sobre una copia
// del almacén y solo un retorno sin error la confirma.
type fakeProfileTx struct {
	store *fakeProfileStore
}

func (f *fakeProfileTx) RunCompanyProfiles(_ context.Context, fn func(repo repository.CompanyProfileRepository) error) error {
	staged := f.store.clone()
	if err := fn(staged); err != nil {
		return err
	}
	*f.store = *staged
	return nil
}

func newProfileFixture() (*CompanyUseCase, *fakeProfileStore) {
	store := newFakeProfileStore()
	return NewCompanyUseCase(&fakeProfileTx{store: store}, store), store
}

func profileRequest(name string, isDefault bool) dto.CompanyProfileRequest {
	return dto.CompanyProfileRequest{
		Name:      name,
		Email:     name + "@example.com",
		Phone:     "555-0100",
		IsDefault: isDefault,
	}
}

func TestCompanyCreate_PrimerPerfilQuedaPredeterminado(t *testing.T) {
	uc, _ := newProfileFixture()

	resp, err := uc.Create(context.Background(), profileUserID, profileRequest("Delta", false))
	require.NoError(t, err)
	assert.True(t, resp.IsDefault, "el primer perfil se marca predeterminado aunque no lo pida")
}

func TestCompanyCreate_NuevoPredeterminadoDesplazaAlAnterior(t *testing.T) {
	uc, store := newProfileFixture()

	first, err := uc.Create(context.Background(), profileUserID, profileRequest("Delta", true))
	require.NoError(t, err)

	second, err := uc.Create(context.Background(), profileUserID, profileRequest("Gamma", true))
	require.NoError(t, err)
	assert.True(t, second.IsDefault)

	prev, err := store.GetByID(first.ID)
	require.NoError(t, err)
	assert.False(t, prev.IsDefault, "solo puede haber un predeterminado por usuario")
}

func TestCompanyCreate_InsertFallido_ConservaElPredeterminado(t *testing.T) {
	uc, store := newProfileFixture()

	_, err := uc.Create(context.Background(), profileUserID, profileRequest("Delta", true))
	require.NoError(t, err)

	store.failCreate = true
	_, err = uc.Create(context.Background(), profileUserID, profileRequest("Gamma", true))
	require.Error(t, err)

	current, err := store.GetDefaultByUser(profileUserID)
	require.NoError(t, err)
	require.NotNil(t, current, "un alta fallida no debe dejar al usuario sin predeterminado")
	assert.Equal(t, "Delta", current.Name)
}

func TestCompanyUpdate_FalloNoDesplazaAlPredeterminado(t *testing.T) {
	uc, store := newProfileFixture()

	_, err := uc.Create(context.Background(), profileUserID, profileRequest("Delta", true))
	require.NoError(t, err)
	other, err := uc.Create(context.Background(), profileUserID, profileRequest("Gamma", false))
	require.NoError(t, err)

	store.failUpdate = true
	_, err = uc.Update(context.Background(), profileUserID, other.ID, profileRequest("Gamma", true))
	require.Error(t, err)

	current, err := store.GetDefaultByUser(profileUserID)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "Delta", current.Name)
}

func TestCompanyUpdate_OtroUsuarioNoPuedeEditar(t *testing.T) {
	uc, _ := newProfileFixture()

	created, err := uc.Create(context.Background(), profileUserID, profileRequest("Delta", true))
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), "otro-usuario", created.ID, profileRequest("Delta", true))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/apierror"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/dto"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/model"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/service"
)

func newEmpresaEnv() (*fakeEmpresaRepo, *fakeUsuarioRepo, service.EmpresaService) {
	empresas := newFakeEmpresaRepo()
	usuarios := newFakeUsuarioRepo()
	return empresas, usuarios, service.NewEmpresaService(empresas, usuarios)
}

func TestCriarEmpresaProvisionaAdmin(t *testing.T) {
	_, usuarios, svc := newEmpresaEnv()

	resp, err := svc.Criar(context.Background(), dto.CriarEmpresaRequest{
		Nome:             "Cantina da Nona",
		EmailContato:     "contato@nona.com",
		LicencaValidaAte: "2027-12-31",
		AdminNome:        "Dona Maria",
		AdminEmail:       "maria@nona.com",
		AdminSenha:       "senha123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Cantina da Nona", resp.Nome)
	assert.True(t, resp.Ativa)

	admin, err := usuarios.FindByEmail(context.Background(), "maria@nona.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdminEmpresa, admin.Role)
	require.NotNil(t, admin.EmpresaID)
	assert.Equal(t, resp.ID, admin.EmpresaID.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.SenhaHash), []byte("senha123")))
}

func TestCriarEmpresaLicencaInvalida(t *testing.T) {
	_, _, svc := newEmpresaEnv()

	_, err := svc.Criar(context.Background(), dto.CriarEmpresaRequest{
		Nome:             "X",
		EmailContato:     "x@y.z",
		LicencaValidaAte: "31/12/2027",
		AdminNome:        "A",
		AdminEmail:       "a@y.z",
		AdminSenha:       "senha123",
	})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindInvalidArgument))
}

func TestAtualizarEmpresa(t *testing.T) {
	empresas, _, svc := newEmpresaEnv()
	empresa := &model.Empresa{Nome: "Antiga", EmailContato: "a@b.c", Ativa: true, LicencaValidaAte: time.Now()}
	require.NoError(t, empresas.Create(context.Background(), empresa))

	nome := "Renovada"
	ativa := false
	licenca := "2028-06-30"
	resp, err := svc.Atualizar(context.Background(), empresa.ID, dto.AtualizarEmpresaRequest{
		Nome:             &nome,
		Ativa:            &ativa,
		LicencaValidaAte: &licenca,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renovada", resp.Nome)
	assert.False(t, resp.Ativa)
	assert.Equal(t, 2028, resp.LicencaValidaAte.Year())
}

func TestAtualizarEmpresaInexistente(t *testing.T) {
	_, _, svc := newEmpresaEnv()

	_, err := svc.Atualizar(context.Background(), uuid.New(), dto.AtualizarEmpresaRequest{})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
}

func TestAssertAtiva(t *testing.T) {
	empresas, _, svc := newEmpresaEnv()

	ok := &model.Empresa{Nome: "OK", EmailContato: "a@b.c", Ativa: true, LicencaValidaAte: time.Now().AddDate(0, 1, 0)}
	desativada := &model.Empresa{Nome: "Off", EmailContato: "a@b.c", Ativa: false, LicencaValidaAte: time.Now().AddDate(0, 1, 0)}
	vencida := &model.Empresa{Nome: "Vencida", EmailContato: "a@b.c", Ativa: true, LicencaValidaAte: time.Now().AddDate(0, 0, -2)}
	for _, e := range []*model.Empresa{ok, desativada, vencida} {
		require.NoError(t, empresas.Create(context.Background(), e))
	}

	assert.NoError(t, svc.AssertAtiva(context.Background(), ok.ID))

	err := svc.AssertAtiva(context.Background(), desativada.ID)
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindForbidden))
	assert.ErrorContains(t, err, "Empresa desativada")

	err = svc.AssertAtiva(context.Background(), vencida.ID)
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindForbidden))
	assert.ErrorContains(t, err, "Licença")

	err = svc.AssertAtiva(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
}

// A license is good through the end of its expiry day, not the instant it
// starts.
func TestAssertAtivaLicencaValidaHoje(t *testing.T) {
	empresas, _, svc := newEmpresaEnv()
	agora := time.Now()
	hoje := &model.Empresa{
		Nome: "Hoje", EmailContato: "a@b.c", Ativa: true,
		LicencaValidaAte: time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, time.Local),
	}
	require.NoError(t, empresas.Create(context.Background(), hoje))

	assert.NoError(t, svc.AssertAtiva(context.Background(), hoje.ID))
}

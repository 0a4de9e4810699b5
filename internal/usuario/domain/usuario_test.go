package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPerfilUsuario_Validar(t *testing.T) {
	base := func() *PerfilUsuario {
		return &PerfilUsuario{
			Nombres:         "Ana Ruiz",
			Correo:          "ana@correo.co",
			TipoDocumento:   "CEDULA",
			NumeroDocumento: "1234567",
			Telefono:        "3001112233",
			Edad:            21,
			Genero:          GeneroMujer,
			Sede:            "MELENDEZ",
			Estamento:       EstamentoInvitado,
		}
	}

	tests := []struct {
		name     string
		mutar    func(u *PerfilUsuario)
		esValido bool
	}{
		{
			name:     "invitado sin campos académicos",
			mutar:    func(u *PerfilUsuario) {},
			esValido: true,
		},
		{
			name: "estudiante con campos académicos completos",
			mutar: func(u *PerfilUsuario) {
				u.Estamento = EstamentoEstudiante
				u.CodigoEstudiante = "201912345"
				u.Facultad = "Artes Integradas"
				u.ProgramaAcademico = "Música"
			},
			esValido: true,
		},
		{
			name: "estudiante sin programa académico",
			mutar: func(u *PerfilUsuario) {
				u.Estamento = EstamentoEstudiante
				u.CodigoEstudiante = "201912345"
				u.Facultad = "Artes Integradas"
			},
			esValido: false,
		},
		{
			name: "docente con campos académicos",
			mutar: func(u *PerfilUsuario) {
				u.Estamento = EstamentoDocente
				u.Facultad = "Ciencias"
			},
			esValido: false,
		},
		{
			name: "género fuera del enum",
			mutar: func(u *PerfilUsuario) {
				u.Genero = Genero("FEMENINO")
			},
			esValido: false,
		},
		{
			name: "sin nombres",
			mutar: func(u *PerfilUsuario) {
				u.Nombres = "  "
			},
			esValido: false,
		},
		{
			name: "sin documento",
			mutar: func(u *PerfilUsuario) {
				u.NumeroDocumento = ""
			},
			esValido: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := base()
			tt.mutar(u)
			err := u.Validar()
			if tt.esValido {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrPerfilInvalido)
			}
		})
	}
}

func TestPerfilUsuario_EsEncargado(t *testing.T) {
	u := &PerfilUsuario{Rol: RolDirector}
	assert.True(t, u.EsEncargado())

	u.Rol = RolMonitor
	assert.True(t, u.EsEncargado())

	u.Rol = RolEstudiante
	assert.False(t, u.EsEncargado())

	u.Rol = ""
	assert.False(t, u.EsEncargado())
}

func TestPerfilUsuario_GeneroNormalizado(t *testing.T) {
	u := &PerfilUsuario{Genero: GeneroMujer}
	assert.Equal(t, "mujer", u.GeneroNormalizado())

	u.Genero = GeneroHombre
	assert.Equal(t, "hombre", u.GeneroNormalizado())

	u.Genero = GeneroOtro
	assert.Equal(t, "otro", u.GeneroNormalizado())
}

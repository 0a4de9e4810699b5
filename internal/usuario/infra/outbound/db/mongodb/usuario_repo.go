package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	sharedDomain "github.com/davicafu/asistencia-cultural/internal/shared/domain"
	sharedMongo "github.com/davicafu/asistencia-cultural/internal/shared/infra/db/mongodb"
	usuarioDomain "github.com/davicafu/asistencia-cultural/internal/usuario/domain"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// UsuarioRepoMongoDB implementa UsuarioRepository sobre la colección
// user_profiles, con el outbox en la misma transacción.
type UsuarioRepoMongoDB struct {
	client       *mongo.Client
	perfilesColl *mongo.Collection
	outboxColl   *mongo.Collection
}

func NewUsuarioRepoMongoDB(ctx context.Context, client *mongo.Client, dbName string) (*UsuarioRepoMongoDB, error) {
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("could not ping mongoDB: %w", err)
	}

	db := client.Database(dbName)
	return &UsuarioRepoMongoDB{
		client:       client,
		perfilesColl: db.Collection("user_profiles"),
		outboxColl:   db.Collection("outbox"),
	}, nil
}

// --- Structs de BSON para el mapeo ---
// Se definen localmente para no "contaminar" el dominio con tags de BSON.

type mongoPerfil struct {
	ID                uuid.UUID               `bson:"_id"`
	Nombres           string                  `bson:"nombres"`
	Correo            string                  `bson:"correo"`
	TipoDocumento     string                  `bson:"tipoDocumento"`
	NumeroDocumento   string                  `bson:"numeroDocumento"`
	Telefono          string                  `bson:"telefono"`
	Edad              int                     `bson:"edad"`
	Genero            usuarioDomain.Genero    `bson:"genero"`
	Etnia             string                  `bson:"etnia"`
	Sede              string                  `bson:"sede"`
	Estamento         usuarioDomain.Estamento `bson:"estamento"`
	CodigoEstudiante  string                  `bson:"codigoEstudiante,omitempty"`
	Facultad          string                  `bson:"facultad,omitempty"`
	ProgramaAcademico string                  `bson:"programaAcademico,omitempty"`
	Rol               usuarioDomain.Rol       `bson:"rol,omitempty"`
	CreatedAt         time.Time               `bson:"createdAt"`
	UltimaAsistencia  time.Time               `bson:"lastAttendance"`
}

func toMongoPerfil(u *usuarioDomain.PerfilUsuario) *mongoPerfil {
	return &mongoPerfil{
		ID:                u.ID,
		Nombres:           u.Nombres,
		Correo:            u.Correo,
		TipoDocumento:     u.TipoDocumento,
		NumeroDocumento:   u.NumeroDocumento,
		Telefono:          u.Telefono,
		Edad:              u.Edad,
		Genero:            u.Genero,
		Etnia:             u.Etnia,
		Sede:              u.Sede,
		Estamento:         u.Estamento,
		CodigoEstudiante:  u.CodigoEstudiante,
		Facultad:          u.Facultad,
		ProgramaAcademico: u.ProgramaAcademico,
		Rol:               u.Rol,
		CreatedAt:         u.CreatedAt,
		UltimaAsistencia:  u.UltimaAsistencia,
	}
}

func fromMongoPerfil(m *mongoPerfil) *usuarioDomain.PerfilUsuario {
	return &usuarioDomain.PerfilUsuario{
		ID:                m.ID,
		Nombres:           m.Nombres,
		Correo:            m.Correo,
		TipoDocumento:     m.TipoDocumento,
		NumeroDocumento:   m.NumeroDocumento,
		Telefono:          m.Telefono,
		Edad:              m.Edad,
		Genero:            m.Genero,
		Etnia:             m.Etnia,
		Sede:              m.Sede,
		Estamento:         m.Estamento,
		CodigoEstudiante:  m.CodigoEstudiante,
		Facultad:          m.Facultad,
		ProgramaAcademico: m.ProgramaAcademico,
		Rol:               m.Rol,
		CreatedAt:         m.CreatedAt,
		UltimaAsistencia:  m.UltimaAsistencia,
	}
}

// --- CRUD Transaccional ---

func (r *UsuarioRepoMongoDB) Create(ctx context.Context, u *usuarioDomain.PerfilUsuario, evt sharedDomain.OutboxEvent) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if _, err := r.perfilesColl.InsertOne(sessCtx, toMongoPerfil(u)); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, usuarioDomain.ErrUsuarioYaExiste
			}
			return nil, err
		}
		if _, err := r.outboxColl.InsertOne(sessCtx, sharedMongo.ToMongoOutboxEvent(evt)); err != nil {
			return nil, err
		}
		return nil, nil
	})

	return err
}

func (r *UsuarioRepoMongoDB) GetByID(ctx context.Context, id uuid.UUID) (*usuarioDomain.PerfilUsuario, error) {
	var m mongoPerfil
	err := r.perfilesColl.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usuarioDomain.ErrUsuarioNoEncontrado
		}
		return nil, err
	}
	return fromMongoPerfil(&m), nil
}

func (r *UsuarioRepoMongoDB) List(ctx context.Context) ([]*usuarioDomain.PerfilUsuario, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.perfilesColl.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var perfiles []*usuarioDomain.PerfilUsuario
	for cursor.Next(ctx) {
		var m mongoPerfil
		if err := cursor.Decode(&m); err != nil {
			return nil, err
		}
		perfiles = append(perfiles, fromMongoPerfil(&m))
	}

	return perfiles, cursor.Err()
}

func (r *UsuarioRepoMongoDB) ActualizarRol(ctx context.Context, id uuid.UUID, rol usuarioDomain.Rol) error {
	res, err := r.perfilesColl.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"rol": rol}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return usuarioDomain.ErrUsuarioNoEncontrado
	}
	return nil
}

func (r *UsuarioRepoMongoDB) ActualizarUltimaAsistencia(ctx context.Context, id uuid.UUID, t time.Time) error {
	res, err := r.perfilesColl.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"lastAttendance": t}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return usuarioDomain.ErrUsuarioNoEncontrado
	}
	return nil
}

func (r *UsuarioRepoMongoDB) DeleteByID(ctx context.Context, id uuid.UUID, evt sharedDomain.OutboxEvent) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		res, err := r.perfilesColl.DeleteOne(sessCtx, bson.M{"_id": id})
		if err != nil {
			return nil, err
		}
		if res.DeletedCount == 0 {
			return nil, usuarioDomain.ErrUsuarioNoEncontrado
		}
		if _, err := r.outboxColl.InsertOne(sessCtx, sharedMongo.ToMongoOutboxEvent(evt)); err != nil {
			return nil, err
		}
		return nil, nil
	})

	return err
}

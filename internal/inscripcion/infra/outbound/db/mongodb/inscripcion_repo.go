package mongodb

import (
	"context"
	"fmt"
	"time"

	inscripcionDomain "github.com/davicafu/asistencia-cultural/internal/inscripcion/domain"
	sharedDomain "github.com/davicafu/asistencia-cultural/internal/shared/domain"
	sharedMongo "github.com/davicafu/asistencia-cultural/internal/shared/infra/db/mongodb"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// InscripcionRepoMongoDB implementa InscripcionRepository sobre la
// colección group_enrollments.
type InscripcionRepoMongoDB struct {
	client            *mongo.Client
	inscripcionesColl *mongo.Collection
	outboxColl        *mongo.Collection
}

func NewInscripcionRepoMongoDB(ctx context.Context, client *mongo.Client, dbName string) (*InscripcionRepoMongoDB, error) {
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("could not ping mongoDB: %w", err)
	}

	db := client.Database(dbName)
	return &InscripcionRepoMongoDB{
		client:            client,
		inscripcionesColl: db.Collection("group_enrollments"),
		outboxColl:        db.Collection("outbox"),
	}, nil
}

type mongoInscripcion struct {
	ID               uuid.UUID `bson:"_id"`
	UserID           uuid.UUID `bson:"userId"`
	GrupoCultural    string    `bson:"grupoCultural"`
	FechaInscripcion time.Time `bson:"fechaInscripcion"`
}

func fromMongoInscripcion(m *mongoInscripcion) inscripcionDomain.InscripcionGrupo {
	return inscripcionDomain.InscripcionGrupo{
		ID:               m.ID,
		UserID:           m.UserID,
		GrupoCultural:    m.GrupoCultural,
		FechaInscripcion: m.FechaInscripcion,
	}
}

func (r *InscripcionRepoMongoDB) Create(ctx context.Context, i *inscripcionDomain.InscripcionGrupo, evt sharedDomain.OutboxEvent) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		mi := &mongoInscripcion{
			ID:               i.ID,
			UserID:           i.UserID,
			GrupoCultural:    i.GrupoCultural,
			FechaInscripcion: i.FechaInscripcion,
		}
		if _, err := r.inscripcionesColl.InsertOne(sessCtx, mi); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, inscripcionDomain.ErrYaInscrito
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

func (r *InscripcionRepoMongoDB) Existe(ctx context.Context, userID uuid.UUID, grupo string) (bool, error) {
	count, err := r.inscripcionesColl.CountDocuments(ctx, bson.M{"userId": userID, "grupoCultural": grupo})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *InscripcionRepoMongoDB) List(ctx context.Context) ([]inscripcionDomain.InscripcionGrupo, error) {
	return r.listar(ctx, bson.M{})
}

func (r *InscripcionRepoMongoDB) ListPorUsuario(ctx context.Context, userID uuid.UUID) ([]inscripcionDomain.InscripcionGrupo, error) {
	return r.listar(ctx, bson.M{"userId": userID})
}

func (r *InscripcionRepoMongoDB) ListPorGrupo(ctx context.Context, grupo string) ([]inscripcionDomain.InscripcionGrupo, error) {
	return r.listar(ctx, bson.M{"grupoCultural": grupo})
}

func (r *InscripcionRepoMongoDB) listar(ctx context.Context, filter bson.M) ([]inscripcionDomain.InscripcionGrupo, error) {
	cursor, err := r.inscripcionesColl.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var inscripciones []inscripcionDomain.InscripcionGrupo
	for cursor.Next(ctx) {
		var mi mongoInscripcion
		if err := cursor.Decode(&mi); err != nil {
			return nil, err
		}
		inscripciones = append(inscripciones, fromMongoInscripcion(&mi))
	}

	return inscripciones, cursor.Err()
}

func (r *InscripcionRepoMongoDB) Delete(ctx context.Context, userID uuid.UUID, grupo string, evt sharedDomain.OutboxEvent) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		res, err := r.inscripcionesColl.DeleteOne(sessCtx, bson.M{"userId": userID, "grupoCultural": grupo})
		if err != nil {
			return nil, err
		}
		if res.DeletedCount == 0 {
			return nil, inscripcionDomain.ErrInscripcionNoEncontrada
		}
		if _, err := r.outboxColl.InsertOne(sessCtx, sharedMongo.ToMongoOutboxEvent(evt)); err != nil {
			return nil, err
		}
		return nil, nil
	})

	return err
}

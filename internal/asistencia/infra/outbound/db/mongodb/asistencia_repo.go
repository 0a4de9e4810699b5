package mongodb

import (
	"context"
	"fmt"
	"time"

	asistenciaDomain "github.com/davicafu/asistencia-cultural/internal/asistencia/domain"
	sharedDomain "github.com/davicafu/asistencia-cultural/internal/shared/domain"
	sharedMongo "github.com/davicafu/asistencia-cultural/internal/shared/infra/db/mongodb"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// AsistenciaRepoMongoDB implementa AsistenciaRepository sobre la colección
// attendance_records. La bitácora es de solo inserción.
type AsistenciaRepoMongoDB struct {
	client       *mongo.Client
	entradasColl *mongo.Collection
	outboxColl   *mongo.Collection
}

func NewAsistenciaRepoMongoDB(ctx context.Context, client *mongo.Client, dbName string) (*AsistenciaRepoMongoDB, error) {
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("could not ping mongoDB: %w", err)
	}

	db := client.Database(dbName)
	return &AsistenciaRepoMongoDB{
		client:       client,
		entradasColl: db.Collection("attendance_records"),
		outboxColl:   db.Collection("outbox"),
	}, nil
}

type mongoEntrada struct {
	ID            uuid.UUID `bson:"_id"`
	UserID        uuid.UUID `bson:"userId"`
	GrupoCultural string    `bson:"grupoCultural"`
	Timestamp     time.Time `bson:"timestamp"`
}

func (r *AsistenciaRepoMongoDB) Create(ctx context.Context, e *asistenciaDomain.EntradaAsistencia, evt sharedDomain.OutboxEvent) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		me := &mongoEntrada{
			ID:            e.ID,
			UserID:        e.UserID,
			GrupoCultural: e.GrupoCultural,
			Timestamp:     e.Timestamp,
		}
		if _, err := r.entradasColl.InsertOne(sessCtx, me); err != nil {
			return nil, err
		}
		if _, err := r.outboxColl.InsertOne(sessCtx, sharedMongo.ToMongoOutboxEvent(evt)); err != nil {
			return nil, err
		}
		return nil, nil
	})

	return err
}

func (r *AsistenciaRepoMongoDB) List(ctx context.Context) ([]asistenciaDomain.EntradaAsistencia, error) {
	cursor, err := r.entradasColl.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entradas []asistenciaDomain.EntradaAsistencia
	for cursor.Next(ctx) {
		var me mongoEntrada
		if err := cursor.Decode(&me); err != nil {
			return nil, err
		}
		entradas = append(entradas, asistenciaDomain.EntradaAsistencia{
			ID:            me.ID,
			UserID:        me.UserID,
			GrupoCultural: me.GrupoCultural,
			Timestamp:     me.Timestamp,
		})
	}

	return entradas, cursor.Err()
}

// EliminarPorUsuario borra todas las entradas del usuario (cascada del
// borrado de perfil).
func (r *AsistenciaRepoMongoDB) EliminarPorUsuario(ctx context.Context, userID uuid.UUID) error {
	_, err := r.entradasColl.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}

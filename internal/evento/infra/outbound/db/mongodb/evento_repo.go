package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	eventoDomain "github.com/davicafu/asistencia-cultural/internal/evento/domain"
	sharedDomain "github.com/davicafu/asistencia-cultural/internal/shared/domain"
	sharedMongo "github.com/davicafu/asistencia-cultural/internal/shared/infra/db/mongodb"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// EventoRepoMongoDB implementa EventoRepository sobre las colecciones
// events y event_attendance_records.
type EventoRepoMongoDB struct {
	client          *mongo.Client
	eventosColl     *mongo.Collection
	asistenciasColl *mongo.Collection
	outboxColl      *mongo.Collection
}

func NewEventoRepoMongoDB(ctx context.Context, client *mongo.Client, dbName string) (*EventoRepoMongoDB, error) {
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("could not ping mongoDB: %w", err)
	}

	db := client.Database(dbName)
	return &EventoRepoMongoDB{
		client:          client,
		eventosColl:     db.Collection("events"),
		asistenciasColl: db.Collection("event_attendance_records"),
		outboxColl:      db.Collection("outbox"),
	}, nil
}

type mongoEvento struct {
	ID               uuid.UUID `bson:"_id"`
	Nombre           string    `bson:"nombre"`
	Hora             string    `bson:"hora"`
	Lugar            string    `bson:"lugar"`
	FechaApertura    time.Time `bson:"fechaApertura"`
	FechaVencimiento time.Time `bson:"fechaVencimiento"`
	Activo           bool      `bson:"activo"`
	CreatedAt        time.Time `bson:"createdAt"`
}

type mongoEntradaEvento struct {
	ID        uuid.UUID `bson:"_id"`
	UserID    uuid.UUID `bson:"userId"`
	EventoID  uuid.UUID `bson:"eventoId"`
	Timestamp time.Time `bson:"timestamp"`
}

func toMongoEvento(e *eventoDomain.Evento) *mongoEvento {
	return &mongoEvento{
		ID:               e.ID,
		Nombre:           e.Nombre,
		Hora:             e.Hora,
		Lugar:            e.Lugar,
		FechaApertura:    e.FechaApertura,
		FechaVencimiento: e.FechaVencimiento,
		Activo:           e.Activo,
		CreatedAt:        e.CreatedAt,
	}
}

func fromMongoEvento(m *mongoEvento) *eventoDomain.Evento {
	return &eventoDomain.Evento{
		ID:               m.ID,
		Nombre:           m.Nombre,
		Hora:             m.Hora,
		Lugar:            m.Lugar,
		FechaApertura:    m.FechaApertura,
		FechaVencimiento: m.FechaVencimiento,
		Activo:           m.Activo,
		CreatedAt:        m.CreatedAt,
	}
}

func (r *EventoRepoMongoDB) Create(ctx context.Context, e *eventoDomain.Evento, evt sharedDomain.OutboxEvent) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if _, err := r.eventosColl.InsertOne(sessCtx, toMongoEvento(e)); err != nil {
			return nil, err
		}
		if _, err := r.outboxColl.InsertOne(sessCtx, sharedMongo.ToMongoOutboxEvent(evt)); err != nil {
			return nil, err
		}
		return nil, nil
	})

	return err
}

func (r *EventoRepoMongoDB) GetByID(ctx context.Context, id uuid.UUID) (*eventoDomain.Evento, error) {
	var m mongoEvento
	err := r.eventosColl.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, eventoDomain.ErrEventoNoEncontrado
		}
		return nil, err
	}
	return fromMongoEvento(&m), nil
}

func (r *EventoRepoMongoDB) List(ctx context.Context) ([]*eventoDomain.Evento, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.eventosColl.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var eventos []*eventoDomain.Evento
	for cursor.Next(ctx) {
		var m mongoEvento
		if err := cursor.Decode(&m); err != nil {
			return nil, err
		}
		eventos = append(eventos, fromMongoEvento(&m))
	}

	return eventos, cursor.Err()
}

func (r *EventoRepoMongoDB) ActualizarActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	res, err := r.eventosColl.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"activo": activo}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return eventoDomain.ErrEventoNoEncontrado
	}
	return nil
}

// DeleteByID borra el evento y, en la misma transacción, todas sus
// asistencias (cascada).
func (r *EventoRepoMongoDB) DeleteByID(ctx context.Context, id uuid.UUID, evt sharedDomain.OutboxEvent) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		res, err := r.eventosColl.DeleteOne(sessCtx, bson.M{"_id": id})
		if err != nil {
			return nil, err
		}
		if res.DeletedCount == 0 {
			return nil, eventoDomain.ErrEventoNoEncontrado
		}
		if _, err := r.asistenciasColl.DeleteMany(sessCtx, bson.M{"eventoId": id}); err != nil {
			return nil, err
		}
		if _, err := r.outboxColl.InsertOne(sessCtx, sharedMongo.ToMongoOutboxEvent(evt)); err != nil {
			return nil, err
		}
		return nil, nil
	})

	return err
}

func (r *EventoRepoMongoDB) CrearAsistencia(ctx context.Context, e *eventoDomain.EntradaAsistenciaEvento, evt sharedDomain.OutboxEvent) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		me := &mongoEntradaEvento{
			ID:        e.ID,
			UserID:    e.UserID,
			EventoID:  e.EventoID,
			Timestamp: e.Timestamp,
		}
		if _, err := r.asistenciasColl.InsertOne(sessCtx, me); err != nil {
			return nil, err
		}
		if _, err := r.outboxColl.InsertOne(sessCtx, sharedMongo.ToMongoOutboxEvent(evt)); err != nil {
			return nil, err
		}
		return nil, nil
	})

	return err
}

func (r *EventoRepoMongoDB) ListAsistencias(ctx context.Context) ([]eventoDomain.EntradaAsistenciaEvento, error) {
	cursor, err := r.asistenciasColl.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entradas []eventoDomain.EntradaAsistenciaEvento
	for cursor.Next(ctx) {
		var me mongoEntradaEvento
		if err := cursor.Decode(&me); err != nil {
			return nil, err
		}
		entradas = append(entradas, eventoDomain.EntradaAsistenciaEvento{
			ID:        me.ID,
			UserID:    me.UserID,
			EventoID:  me.EventoID,
			Timestamp: me.Timestamp,
		})
	}

	return entradas, cursor.Err()
}

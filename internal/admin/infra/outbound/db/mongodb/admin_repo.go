package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	adminDomain "github.com/davicafu/asistencia-cultural/internal/admin/domain"
	sharedDomain "github.com/davicafu/asistencia-cultural/internal/shared/domain"
	sharedMongo "github.com/davicafu/asistencia-cultural/internal/shared/infra/db/mongodb"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Las colecciones del panel de administración comparten cliente pero cada
// puerto tiene su propio repo: admin_users, group_managers y
// group_category_assignments.

type AdminRepoMongoDB struct {
	client     *mongo.Client
	adminsColl *mongo.Collection
	outboxColl *mongo.Collection
}

func NewAdminRepoMongoDB(ctx context.Context, client *mongo.Client, dbName string) (*AdminRepoMongoDB, error) {
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("could not ping mongoDB: %w", err)
	}

	db := client.Database(dbName)
	return &AdminRepoMongoDB{
		client:     client,
		adminsColl: db.Collection("admin_users"),
		outboxColl: db.Collection("outbox"),
	}, nil
}

type EncargadoRepoMongoDB struct {
	client         *mongo.Client
	encargadosColl *mongo.Collection
	outboxColl     *mongo.Collection
}

func NewEncargadoRepoMongoDB(client *mongo.Client, dbName string) *EncargadoRepoMongoDB {
	db := client.Database(dbName)
	return &EncargadoRepoMongoDB{
		client:         client,
		encargadosColl: db.Collection("group_managers"),
		outboxColl:     db.Collection("outbox"),
	}
}

type CategoriaRepoMongoDB struct {
	client         *mongo.Client
	categoriasColl *mongo.Collection
	outboxColl     *mongo.Collection
}

func NewCategoriaRepoMongoDB(client *mongo.Client, dbName string) *CategoriaRepoMongoDB {
	db := client.Database(dbName)
	return &CategoriaRepoMongoDB{
		client:         client,
		categoriasColl: db.Collection("group_category_assignments"),
		outboxColl:     db.Collection("outbox"),
	}
}

// --- Structs de BSON para el mapeo ---

type mongoAdmin struct {
	ID              uuid.UUID `bson:"_id"`
	NumeroDocumento string    `bson:"numeroDocumento"`
	Correo          string    `bson:"correo"`
	Nombres         string    `bson:"nombres"`
	CreatedAt       time.Time `bson:"createdAt"`
	CreadoPor       string    `bson:"createdBy"`
}

type mongoEncargado struct {
	ID            uuid.UUID  `bson:"_id"`
	UserID        uuid.UUID  `bson:"userId"`
	GrupoCultural string     `bson:"grupoCultural"`
	AsignadoEn    time.Time  `bson:"assignedAt"`
	AsignadoPor   string     `bson:"assignedBy"`
	Removido      bool       `bson:"removed"`
	RemovidoEn    *time.Time `bson:"removedAt,omitempty"`
}

type mongoCategoria struct {
	ID            uuid.UUID                  `bson:"_id"`
	UserID        uuid.UUID                  `bson:"userId"`
	GrupoCultural string                     `bson:"grupoCultural"`
	Categoria     adminDomain.CategoriaGrupo `bson:"category"`
	AsignadoEn    time.Time                  `bson:"assignedAt"`
}

// --- admin_users ---

func (r *AdminRepoMongoDB) Create(ctx context.Context, a *adminDomain.UsuarioAdmin, evt sharedDomain.OutboxEvent) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		ma := &mongoAdmin{
			ID:              a.ID,
			NumeroDocumento: a.NumeroDocumento,
			Correo:          a.Correo,
			Nombres:         a.Nombres,
			CreatedAt:       a.CreatedAt,
			CreadoPor:       a.CreadoPor,
		}
		if _, err := r.adminsColl.InsertOne(sessCtx, ma); err != nil {
			return nil, err
		}
		if _, err := r.outboxColl.InsertOne(sessCtx, sharedMongo.ToMongoOutboxEvent(evt)); err != nil {
			return nil, err
		}
		return nil, nil
	})

	return err
}

func (r *AdminRepoMongoDB) Buscar(ctx context.Context, documento, correo string) (*adminDomain.UsuarioAdmin, error) {
	var ma mongoAdmin
	err := r.adminsColl.FindOne(ctx, bson.M{"numeroDocumento": documento, "correo": correo}).Decode(&ma)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, adminDomain.ErrAdminNoEncontrado
		}
		return nil, err
	}
	return fromMongoAdmin(&ma), nil
}

func (r *AdminRepoMongoDB) List(ctx context.Context) ([]*adminDomain.UsuarioAdmin, error) {
	cursor, err := r.adminsColl.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var admins []*adminDomain.UsuarioAdmin
	for cursor.Next(ctx) {
		var ma mongoAdmin
		if err := cursor.Decode(&ma); err != nil {
			return nil, err
		}
		admins = append(admins, fromMongoAdmin(&ma))
	}

	return admins, cursor.Err()
}

func fromMongoAdmin(m *mongoAdmin) *adminDomain.UsuarioAdmin {
	return &adminDomain.UsuarioAdmin{
		ID:              m.ID,
		NumeroDocumento: m.NumeroDocumento,
		Correo:          m.Correo,
		Nombres:         m.Nombres,
		CreatedAt:       m.CreatedAt,
		CreadoPor:       m.CreadoPor,
	}
}

// --- group_managers ---

func (r *EncargadoRepoMongoDB) Create(ctx context.Context, e *adminDomain.EncargadoGrupo, evt sharedDomain.OutboxEvent) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		me := &mongoEncargado{
			ID:            e.ID,
			UserID:        e.UserID,
			GrupoCultural: e.GrupoCultural,
			AsignadoEn:    e.AsignadoEn,
			AsignadoPor:   e.AsignadoPor,
		}
		if _, err := r.encargadosColl.InsertOne(sessCtx, me); err != nil {
			return nil, err
		}
		if _, err := r.outboxColl.InsertOne(sessCtx, sharedMongo.ToMongoOutboxEvent(evt)); err != nil {
			return nil, err
		}
		return nil, nil
	})

	return err
}

func (r *EncargadoRepoMongoDB) AsignacionActiva(ctx context.Context, userID uuid.UUID) (*adminDomain.EncargadoGrupo, error) {
	var me mongoEncargado
	err := r.encargadosColl.FindOne(ctx, bson.M{"userId": userID, "removed": false}).Decode(&me)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, adminDomain.ErrEncargadoNoEncontrado
		}
		return nil, err
	}
	return fromMongoEncargado(&me), nil
}

func (r *EncargadoRepoMongoDB) ListPorGrupo(ctx context.Context, grupo string) ([]adminDomain.EncargadoGrupo, error) {
	cursor, err := r.encargadosColl.Find(ctx, bson.M{"grupoCultural": grupo, "removed": false})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var encargados []adminDomain.EncargadoGrupo
	for cursor.Next(ctx) {
		var me mongoEncargado
		if err := cursor.Decode(&me); err != nil {
			return nil, err
		}
		encargados = append(encargados, *fromMongoEncargado(&me))
	}

	return encargados, cursor.Err()
}

func (r *EncargadoRepoMongoDB) Remover(ctx context.Context, id uuid.UUID, cuando time.Time, evt sharedDomain.OutboxEvent) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		update := bson.M{"$set": bson.M{"removed": true, "removedAt": cuando}}
		res, err := r.encargadosColl.UpdateOne(sessCtx, bson.M{"_id": id}, update)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, adminDomain.ErrEncargadoNoEncontrado
		}
		if _, err := r.outboxColl.InsertOne(sessCtx, sharedMongo.ToMongoOutboxEvent(evt)); err != nil {
			return nil, err
		}
		return nil, nil
	})

	return err
}

func fromMongoEncargado(m *mongoEncargado) *adminDomain.EncargadoGrupo {
	return &adminDomain.EncargadoGrupo{
		ID:            m.ID,
		UserID:        m.UserID,
		GrupoCultural: m.GrupoCultural,
		AsignadoEn:    m.AsignadoEn,
		AsignadoPor:   m.AsignadoPor,
		Removido:      m.Removido,
		RemovidoEn:    m.RemovidoEn,
	}
}

// --- group_category_assignments ---

// Reemplazar borra la asignación previa del (usuario, grupo) y escribe la
// nueva dentro de la misma transacción.
func (r *CategoriaRepoMongoDB) Reemplazar(ctx context.Context, a *adminDomain.AsignacionCategoria, evt sharedDomain.OutboxEvent) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		filtro := bson.M{"userId": a.UserID, "grupoCultural": a.GrupoCultural}
		if _, err := r.categoriasColl.DeleteMany(sessCtx, filtro); err != nil {
			return nil, err
		}

		mc := &mongoCategoria{
			ID:            a.ID,
			UserID:        a.UserID,
			GrupoCultural: a.GrupoCultural,
			Categoria:     a.Categoria,
			AsignadoEn:    a.AsignadoEn,
		}
		if _, err := r.categoriasColl.InsertOne(sessCtx, mc); err != nil {
			return nil, err
		}
		if _, err := r.outboxColl.InsertOne(sessCtx, sharedMongo.ToMongoOutboxEvent(evt)); err != nil {
			return nil, err
		}
		return nil, nil
	})

	return err
}

func (r *CategoriaRepoMongoDB) ListPorCategoria(ctx context.Context, grupo string, categoria adminDomain.CategoriaGrupo) ([]adminDomain.AsignacionCategoria, error) {
	cursor, err := r.categoriasColl.Find(ctx, bson.M{"grupoCultural": grupo, "category": categoria})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var asignaciones []adminDomain.AsignacionCategoria
	for cursor.Next(ctx) {
		var mc mongoCategoria
		if err := cursor.Decode(&mc); err != nil {
			return nil, err
		}
		asignaciones = append(asignaciones, adminDomain.AsignacionCategoria{
			ID:            mc.ID,
			UserID:        mc.UserID,
			GrupoCultural: mc.GrupoCultural,
			Categoria:     mc.Categoria,
			AsignadoEn:    mc.AsignadoEn,
		})
	}

	return asignaciones, cursor.Err()
}

func (r *CategoriaRepoMongoDB) CategoriaDe(ctx context.Context, userID uuid.UUID, grupo string) (adminDomain.CategoriaGrupo, error) {
	var mc mongoCategoria
	err := r.categoriasColl.FindOne(ctx, bson.M{"userId": userID, "grupoCultural": grupo}).Decode(&mc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", adminDomain.ErrSinCategoria
		}
		return "", err
	}
	return mc.Categoria, nil
}

func (r *CategoriaRepoMongoDB) RemoverDeCategorias(ctx context.Context, userID uuid.UUID, grupo string) error {
	_, err := r.categoriasColl.DeleteMany(ctx, bson.M{"userId": userID, "grupoCultural": grupo})
	return err
}

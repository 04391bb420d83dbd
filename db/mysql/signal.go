package mysql

import (
	"context"
	"time"

	appDb "github.com/signalroom/signalroom-be/db"
	"github.com/signalroom/signalroom-be/model"
	"github.com/upper/db/v4"
)

type SignalDB struct {
	sess db.Session
}

func getSignalDB(sess db.Session) *SignalDB {
	return &SignalDB{sess}
}

func (sdb *SignalDB) CreateSignal(ctx context.Context, req *appDb.CreateSignal) (int64, error) {
	res, err := sdb.sess.SQL().
		InsertInto("signals").
		Columns("title", "description", "type", "creator_id").
		Values(req.Title, req.Description, req.Type, req.CreatorId).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type flattenedSignal struct {
	Id           int64            `db:"id"`
	Title        string           `db:"title"`
	Description  string           `db:"description"`
	Type         model.SignalType `db:"type"`
	CreatorId    int64            `db:"creator_id"`
	CreatorEmail string           `db:"creator_email"`
	CreatedAt    time.Time        `db:"created_at"`
}

var signalColumns = []interface{}{
	"s.id",
	"s.title",
	"s.description",
	"s.type",
	"s.created_at",
	"u.id AS creator_id",
	"u.email AS creator_email",
}

func (sdb *SignalDB) GetSignalById(ctx context.Context, id int64) (*model.Signal, error) {
	var signal flattenedSignal
	if err := sdb.sess.SQL().
		Select(signalColumns...).
		From("signals AS s").
		Join("users AS u").On("s.creator_id = u.id").
		Where("s.id = ?", id).
		IteratorContext(ctx).
		One(&signal); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return buildSignalFromFlattened(&signal), nil
}

func (sdb *SignalDB) GetSignals(ctx context.Context, query *appDb.SignalsListQuery) ([]*model.Signal, error) {
	var flattenedSignals []flattenedSignal
	if err := sdb.sess.SQL().
		Select(signalColumns...).
		From("signals AS s").
		Join("users AS u").On("s.creator_id = u.id").
		Where("(ISNULL(?) OR s.created_at > ?)", query.Since, query.Since).
		And("(? OR s.type = ?)", !query.FreeOnly, model.SignalTypeFree).
		OrderBy("s.created_at DESC", "s.id DESC").
		IteratorContext(ctx).
		All(&flattenedSignals); err != nil {
		return nil, err
	}
	signals := make([]*model.Signal, len(flattenedSignals))
	for i, flattened := range flattenedSignals {
		signals[i] = buildSignalFromFlattened(&flattened)
	}
	return signals, nil
}

func buildSignalFromFlattened(signal *flattenedSignal) *model.Signal {
	return &model.Signal{
		Id:          signal.Id,
		Title:       signal.Title,
		Description: signal.Description,
		Type:        signal.Type,
		Creator: &model.DisplayableUser{
			Id:    signal.CreatorId,
			Email: signal.CreatorEmail,
		},
		CreatedAt: signal.CreatedAt,
	}
}

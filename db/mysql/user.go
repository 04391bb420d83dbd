package mysql

import (
	"context"

	appDb "github.com/signalroom/signalroom-be/db"
	"github.com/signalroom/signalroom-be/model"
	"github.com/upper/db/v4"
)

type UserDB struct {
	sess db.Session
}

func getUserDB(sess db.Session) *UserDB {
	return &UserDB{sess}
}

func (udb *UserDB) CreateUser(ctx context.Context, req *appDb.CreateUser) (int64, error) {
	res, err := udb.sess.SQL().
		InsertInto("users").
		Columns("email", "password_hash", "is_premium", "role").
		Values(req.Email, req.PasswordHash, req.IsPremium, req.Role).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (udb *UserDB) GetUserById(ctx context.Context, id int64) (*model.User, error) {
	return udb.getUser(ctx, db.Cond{"id": id})
}

func (udb *UserDB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return udb.getUser(ctx, db.Cond{"email": email})
}

func (udb *UserDB) GetUserByEmailAndRole(ctx context.Context, email string, role model.Role) (*model.User, error) {
	return udb.getUser(ctx, db.Cond{"email": email, "role": role})
}

func (udb *UserDB) getUser(ctx context.Context, cond db.Cond) (*model.User, error) {
	var user model.User
	if err := udb.sess.SQL().
		Select("*").
		From("users").
		Where(cond).
		IteratorContext(ctx).
		One(&user); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

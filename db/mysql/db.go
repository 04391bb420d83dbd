package mysql

import (
	"database/sql"
	"fmt"

	appDb "github.com/signalroom/signalroom-be/db"
	"github.com/upper/db/v4"
	"github.com/upper/db/v4/adapter/mysql"
)

type MySQLDB struct {
	*UserDB
	*SignalDB
	*FeedDB
	sess db.Session
}

type Config struct {
	User string
	Pass string
	Host string
	Name string
}

func GetDatabase(cfg *Config) (appDb.Database, error) {
	sqlDB, err := sql.Open("mysql",
		fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true",
			cfg.User, cfg.Pass, cfg.Host, cfg.Name))
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(50)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxIdleTime(0)

	sess, err := mysql.New(sqlDB)
	if err != nil {
		return nil, err
	}

	return &MySQLDB{
		UserDB:   getUserDB(sess),
		SignalDB: getSignalDB(sess),
		FeedDB:   getFeedDB(sess),
		sess:     sess,
	}, nil
}

func (mdb *MySQLDB) Close() error {
	return mdb.sess.Close()
}

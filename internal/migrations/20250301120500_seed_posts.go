package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upSeedPosts, downSeedPosts)
}

// Sample feed so a fresh install has something to show.
func upSeedPosts(tx *sql.Tx) error {
	_, err := tx.Exec(`
	INSERT INTO posts (id, name, username, avatar, content, time_label, replies, reposts, likes) VALUES
	('1', 'Jane Smith',  '@jane',   'https://via.placeholder.com/50', 'Just shipped a new release! #golang #opensource', '2h ago', 2, 5, 12),
	('2', 'Bob Johnson', '@bobj',   'https://via.placeholder.com/50', 'Morning coffee and an image of the sunrise', '4h ago', 0, 1, 3),
	('3', 'Ana Costa',   '@anac',   'https://via.placeholder.com/50', 'New video tutorial on #ReactNative is up!', '6h ago', 4, 8, 21),
	('4', 'Liu Wei',     '@liuwei', 'https://via.placeholder.com/50', 'Long-form text thread about #TypeScript generics', '9h ago', 7, 2, 15),
	('5', 'Sam Harper',  '@samh',   'https://via.placeholder.com/50', 'Does anyone else love #Expo? Asking for a friend', '1d ago', 11, 3, 30)
	ON CONFLICT (id) DO NOTHING;
	`)
	if err != nil {
		return err
	}
	return nil
}

func downSeedPosts(tx *sql.Tx) error {
	_, err := tx.Exec(`
	DELETE FROM posts WHERE id IN ('1', '2', '3', '4', '5');
	`)
	if err != nil {
		return err
	}
	return nil
}

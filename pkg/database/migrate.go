package database

import (
	"fmt"

	"chat-reactions-be/internal/model"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the tables this service owns. The chat
// daemon's tables are never touched.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.RoomMessageReaction{},
		&model.RoomMessageReply{},
	)
}

var foreignKeys = []struct {
	table, name, ddl string
}{
	{
		table: "chatd_room_message_reaction",
		name:  "chatd_room_message_reaction_message_uuid_fkey",
		ddl:   "FOREIGN KEY (message_uuid) REFERENCES chatd_room_message(uuid) ON DELETE CASCADE",
	},
	{
		table: "chatd_room_message_reply",
		name:  "chatd_room_message_reply_child_message_uuid_fkey",
		ddl:   "FOREIGN KEY (child_message_uuid) REFERENCES chatd_room_message(uuid) ON DELETE CASCADE",
	},
	{
		table: "chatd_room_message_reply",
		name:  "chatd_room_message_reply_parent_message_uuid_fkey",
		ddl:   "FOREIGN KEY (parent_message_uuid) REFERENCES chatd_room_message(uuid) ON DELETE SET NULL",
	},
	{
		table: "chatd_room_message_reply",
		name:  "chatd_room_message_reply_room_uuid_fkey",
		ddl:   "FOREIGN KEY (room_uuid) REFERENCES chatd_room(uuid) ON DELETE CASCADE",
	},
}

// EnsureForeignKeys adds the cascades onto the chat daemon's tables. It is
// postgres only and safe to run repeatedly.
func EnsureForeignKeys(db *gorm.DB) error {
	for _, fk := range foreignKeys {
		stmt := fmt.Sprintf(`DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
		ALTER TABLE %s ADD CONSTRAINT %s %s;
	END IF;
END $$;`, fk.name, fk.table, fk.name, fk.ddl)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("add constraint %s: %w", fk.name, err)
		}
	}
	return nil
}

// Package testutil provides an in-memory database and fakes for tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"chat-reactions-be/internal/model"
	"chat-reactions-be/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database holding both the
// plugin tables and the chat daemon tables.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&model.ChatdRoom{}, &model.ChatdRoomUser{}, &model.ChatdRoomMessage{}); err != nil {
		t.Fatalf("migrate chatd tables: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate plugin tables: %v", err)
	}
	return db
}

// SeedRoom creates a room in tenant with the given members.
func SeedRoom(t *testing.T, db *gorm.DB, tenantId uuid.UUID, members ...uuid.UUID) *model.ChatdRoom {
	t.Helper()

	room := &model.ChatdRoom{Id: uuid.New(), Name: "room", TenantId: tenantId}
	if err := db.Omit("Users", "Messages").Create(room).Error; err != nil {
		t.Fatalf("seed room: %v", err)
	}
	for _, m := range members {
		user := model.ChatdRoomUser{RoomId: room.Id, Id: m, TenantId: tenantId, WazoId: uuid.New()}
		if err := db.Create(&user).Error; err != nil {
			t.Fatalf("seed room user: %v", err)
		}
		room.Users = append(room.Users, user)
	}
	return room
}

// SeedMessage appends a message by author to room. Each call gets a later
// created_at than the previous one.
func SeedMessage(t *testing.T, db *gorm.DB, room *model.ChatdRoom, author uuid.UUID, content string) *model.ChatdRoomMessage {
	t.Helper()

	alias := "alias-" + author.String()[:8]
	msg := &model.ChatdRoomMessage{
		Id:        uuid.New(),
		RoomId:    room.Id,
		Alias:     &alias,
		UserId:    author,
		TenantId:  room.TenantId,
		WazoId:    uuid.New(),
		CreatedAt: time.Now().UTC().Add(time.Duration(len(room.Messages)) * time.Millisecond),
	}
	if content != "" {
		msg.Content = &content
	}
	if err := db.Create(msg).Error; err != nil {
		t.Fatalf("seed message: %v", err)
	}
	room.Messages = append(room.Messages, *msg)
	return msg
}

// SeedMessages bulk inserts n messages by author into room.
func SeedMessages(t *testing.T, db *gorm.DB, room *model.ChatdRoom, author uuid.UUID, n int) []model.ChatdRoomMessage {
	t.Helper()

	alias := "alias-" + author.String()[:8]
	base := time.Now().UTC().Add(time.Duration(len(room.Messages)) * time.Millisecond)
	msgs := make([]model.ChatdRoomMessage, n)
	for i := range msgs {
		msgs[i] = model.ChatdRoomMessage{
			Id:        uuid.New(),
			RoomId:    room.Id,
			Alias:     &alias,
			UserId:    author,
			TenantId:  room.TenantId,
			WazoId:    uuid.New(),
			CreatedAt: base.Add(time.Duration(i) * time.Millisecond),
		}
	}
	if err := db.CreateInBatches(msgs, 500).Error; err != nil {
		t.Fatalf("seed messages: %v", err)
	}
	room.Messages = append(room.Messages, msgs...)
	return msgs
}

// DeleteMessage removes a message the way the chat daemon would, without
// touching the plugin tables.
func DeleteMessage(t *testing.T, db *gorm.DB, id uuid.UUID) {
	t.Helper()
	if err := db.Delete(&model.ChatdRoomMessage{}, "uuid = ?", id).Error; err != nil {
		t.Fatalf("delete message: %v", err)
	}
}

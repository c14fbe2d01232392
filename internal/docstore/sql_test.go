package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/restodesk/restodesk/internal"
)

func TestInsertSQL(t *testing.T) {
	cols := []string{"name", "wfStatus", "createdByUser", "changedByUser"}
	assert.Equal(t, "INSERT INTO `eatery` (`name`,`wfStatus`,`createdByUser`,`changedByUser`) VALUES (?,?,?,?);",
		insertSQL(internal.MySQL, "eatery", "id", cols))
	assert.Equal(t, `INSERT INTO "eatery" ("name","wfStatus","createdByUser","changedByUser") VALUES ($1,$2,$3,$4) RETURNING "id";`,
		insertSQL(internal.Postgres, "eatery", "id", cols))
	assert.Equal(t, `INSERT INTO "eatery" ("name","wfStatus","createdByUser","changedByUser") VALUES (?,?,?,?);`,
		insertSQL(internal.SQLite, "eatery", "id", cols))
}

func TestUpdateSQL(t *testing.T) {
	cols := []string{"name", "changedByUser"}
	assert.Equal(t, "UPDATE `eatery` SET `name`=?,`changedByUser`=? WHERE `id`=?;",
		updateSQL(internal.MySQL, "eatery", "id", cols))
	assert.Equal(t, `UPDATE "eatery" SET "name"=$1,"changedByUser"=$2 WHERE "id"=$3;`,
		updateSQL(internal.Postgres, "eatery", "id", cols))
}

func TestSelectSQL(t *testing.T) {
	assert.Equal(t, "SELECT `id`,`name` FROM `eatery` WHERE `id`=?;",
		selectByIDSQL(internal.MySQL, "eatery", "id", []string{"id", "name"}))
	assert.Equal(t, "SELECT `id`,`role` FROM `eatery_employee` WHERE `eatery_id`=? ORDER BY `id`;",
		selectChildrenSQL(internal.MySQL, "eatery_employee", "eatery_id", "id", []string{"id", "role"}))
	assert.Equal(t, "SELECT `id` FROM `employee` WHERE `login`=?;",
		selectIDsByFieldSQL(internal.MySQL, "employee", "id", "login"))
	assert.Equal(t, "SELECT `id` FROM `eatery_employee` WHERE `eatery_id`=?;",
		selectChildIDsSQL(internal.MySQL, "eatery_employee", "eatery_id", "id"))
}

func TestDeleteChildrenSQL(t *testing.T) {
	assert.Equal(t, "DELETE FROM `eatery_employee` WHERE `eatery_id`=? AND `id` IN (?,?,?);",
		deleteChildrenSQL(internal.MySQL, "eatery_employee", "eatery_id", "id", 3))
	assert.Equal(t, `DELETE FROM "eatery_employee" WHERE "eatery_id"=$1 AND "id" IN ($2,$3);`,
		deleteChildrenSQL(internal.Postgres, "eatery_employee", "eatery_id", "id", 2))
}

func TestCollectionSQL(t *testing.T) {
	assert.Equal(t, "SELECT `id` FROM `eatery` WHERE `blocked`=FALSE;",
		collectionSQL(internal.MySQL, "eatery", "id", "", "", 0))
	assert.Equal(t, "SELECT `id` FROM `eatery` WHERE `blocked`=FALSE AND (`rating` >= ?) ORDER BY `rating` DESC LIMIT 10;",
		collectionSQL(internal.MySQL, "eatery", "id", "`rating` >= ?", "`rating` DESC", 10))
}

func TestLoadColumns(t *testing.T) {
	s := &internal.Schema{
		Table:  "meal",
		Fields: []internal.Field{{Name: "name", DDL: "VARCHAR(255) NOT NULL"}},
	}
	assert.Equal(t, []string{"id", "name", "blocked", "wfStatus", "createdByUser", "changedByUser", "created", "changed"},
		loadColumns(s, ""))
	assert.Equal(t, []string{"id", "name", "menu_id", "blocked", "wfStatus", "createdByUser", "changedByUser", "created", "changed"},
		loadColumns(s, "menu_id"))
}

package entity

type Theater struct {
	Base
	Name    string `db:"name"`
	City    string `db:"city"`
	Address string `db:"address"`
}

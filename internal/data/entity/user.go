package entity

type User struct {
	Base
	Name  string `db:"name"`
	Email string `db:"email"`
	Phone string `db:"phone"`
}

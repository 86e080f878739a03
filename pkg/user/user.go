package user

// User is a tenant account. All records in the system are owned by exactly
// one user scope.
type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
	Settings    Settings
}

type Settings struct {
	Timezone string
	Currency string
}

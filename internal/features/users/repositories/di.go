package users_repositories

var userRepository = &UserRepository{}

func GetUserRepository() *UserRepository {
	return userRepository
}

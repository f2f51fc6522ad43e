package cache

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		ObserveAddPosts(added, orphaned, rejected int)
		ObserveAddVotes(counted, rejected int)
	}
)

package webpath

const (
	Home = "/"

	Api             = "/api"
	ApiGames        = Api + "/games"
	ApiGame         = ApiGames + "/:id"
	ApiGameStart    = ApiGame + "/start"
	ApiGameDarts    = ApiGame + "/darts"
	ApiGameNext     = ApiGame + "/next"
	ApiGameReset    = ApiGame + "/reset"
	ApiGameCheckout = ApiGame + "/checkout"
	ApiLeaderboard  = Api + "/leaderboard"
	ApiPlayerRating = ApiLeaderboard + "/:name"
)

func Path() map[string]string {
	return map[string]string{
		"Home":            Home,
		"Api":             Api,
		"ApiGames":        ApiGames,
		"ApiGame":         ApiGame,
		"ApiGameStart":    ApiGameStart,
		"ApiGameDarts":    ApiGameDarts,
		"ApiGameNext":     ApiGameNext,
		"ApiGameReset":    ApiGameReset,
		"ApiGameCheckout": ApiGameCheckout,
		"ApiLeaderboard":  ApiLeaderboard,
		"ApiPlayerRating": ApiPlayerRating,
	}
}

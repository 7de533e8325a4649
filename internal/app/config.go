package app

import (
	"time"

	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/logger"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/utils"
)

type Config struct {
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	GamesTuningPath string
	BanditSeed      int64
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	gamesTuningPath := utils.GetEnv("GAMES_TUNING_PATH", "", log)
	banditSeed := utils.GetEnvAsInt("BANDIT_SEED", 0, log)
	return Config{
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		GamesTuningPath: gamesTuningPath,
		BanditSeed:      int64(banditSeed),
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	env_utils "vendors-backend/internal/util/env"

	"github.com/stretchr/testify/assert"
)

func Test_GetEnv_UnderGoTest_UsesThrowawayLocations(t *testing.T) {
	env := GetEnv()

	testFolder := filepath.Join(os.TempDir(), "vendors-backend-test")

	assert.True(t, env.IsTesting)
	assert.Equal(t, testFolder, env.DataFolder)
	assert.Equal(t, filepath.Join(testFolder, "secret.key"), env.SecretKeyPath)
}

func Test_ApplyTestingDefaults_KeepsExplicitDatabase(t *testing.T) {
	env := EnvVariables{
		DatabaseDriver: env_utils.DatabaseDriverPostgres,
		DatabaseDsn:    "host=db user=vendors",
	}

	applyTestingDefaults(&env)

	assert.Equal(t, env_utils.DatabaseDriverPostgres, env.DatabaseDriver)
	assert.Equal(t, "host=db user=vendors", env.DatabaseDsn)
}

func Test_ApplyTestingDefaults_WithoutDatabase_UsesSqliteFile(t *testing.T) {
	env := EnvVariables{DatabaseDriver: env_utils.DatabaseDriverPostgres}

	applyTestingDefaults(&env)

	assert.Equal(t, env_utils.DatabaseDriverSqlite, env.DatabaseDriver)
	assert.True(t, strings.HasSuffix(env.DatabaseDsn, ".db"))
}

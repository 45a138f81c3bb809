package system_healthcheck

var healthcheckController = &HealthcheckController{
	newHealthcheckService(),
}

func GetHealthcheckController() *HealthcheckController {
	return healthcheckController
}

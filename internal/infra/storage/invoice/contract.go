package invoice

import (
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
)

// DBExecutor интерфейс для выполнения запросов (может быть *dbmetrics.DB или транзакция)
type DBExecutor = dbmetrics.DBExecutor

// TxExecutor интерфейс для работы с транзакциями
type TxExecutor = dbmetrics.TxExecutor

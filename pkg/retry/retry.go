package retry

// Do выполняет fn до attempts раз
// Повторяет только ошибки, для которых retryable(err) == true;
// любая другая ошибка (или nil) возвращается сразу.
// Номер попытки передаётся в fn начиная с 1.
func Do(attempts int, retryable func(error) bool, fn func(attempt int) error) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn(attempt)
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}
	}
	return err
}

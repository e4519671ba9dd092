// Package relay пересылает score из RabbitMQ в HTTP backend.
//
// Когда клиенты настроены на FEEDBACK_TRANSPORT=amqp, они публикуют
// score в exchange feedback.scores. Relay читает очередь scores.relay
// и отправляет каждую запись через scoring.HTTPClient ровно один раз.
//
// Повторов нет: ошибка backend или невалидное сообщение приводят
// к nack без возврата в очередь, сообщение теряется.
//
// # Использование
//
//	r := relay.New(relay.Config{
//	    Conn:   mqConn,
//	    Client: httpClient,
//	    Logger: logger,
//	})
//	r.Start(ctx)
//	defer r.Stop()
package relay

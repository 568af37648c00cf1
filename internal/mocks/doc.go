// Package mocks provides centralized test doubles for the calendar's store,
// transaction, cache and service interfaces.
//
// Stores are backed by a shared in-memory MemoryStore so that joins and
// cascades behave like PostgreSQL:
//
//	mem := mocks.NewMemoryStore()
//	svc := service.NewTaskService(mem.Tasks(), mem.Users(), mocks.PassThroughTransactor{}, nil, logger)
//
// Services are mocked with function fields, one per interface method:
//
//	tasks := &mocks.MockTaskService{
//	    GetByIDFn: func(ctx context.Context, id int64) (*domain.Task, error) {
//	        return nil, store.ErrTaskNotFound
//	    },
//	}
//
// An unset function field returns DefaultError (nil unless set).
package mocks

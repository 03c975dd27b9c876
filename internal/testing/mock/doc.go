// Package mock provides test doubles for the console client.
//
// Console is an in-memory console.Client holding the workspaces, service
// catalog and credentials of one project. Every call is appended to a call
// log, which tests use to assert how many remote operations an install made
// and in what order:
//
//	fake := mock.NewConsole()
//	fake.AddService(console.ServiceDefinition{Code: "AdobeIOManagementAPISDK", Type: "entp", Enabled: true})
//	fake.FailOn(mock.OpSubscribe, errors.New("boom"))
//
//	inst := reconciler.NewInstaller(fake, cfg)
//	_, err := inst.Install(ctx, "org", "project")
//	assert.Equal(t, 1, fake.Count(mock.OpSubscribe))
//
// Clock is a controllable time source for code that takes func() time.Time.
package mock

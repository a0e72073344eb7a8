package services

// Services defined in this package:
// - UserService: registration, login and profile management
// - CourseService: catalog, course content and management operations
// - EnrollmentService: enrollments, reviews and bookmarks
// - PaymentGateway: charge authorization for priced enrollments
